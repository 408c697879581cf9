package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pocketdo/pocketdo/internal/domain"
)

// printTodo prints a single todo to the writer
func printTodo(w io.Writer, todo *domain.Todo, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(todo)
		return
	}

	// Table format
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", todo.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", todo.Title)
	if todo.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", todo.Description)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", statusString(todo.Completed))
	fmt.Fprintf(tw, "Created:\t%s\n", todo.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "Updated:\t%s\n", todo.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	tw.Flush()
}

// printTodoList prints a list of todos
func printTodoList(w io.Writer, todos []*domain.Todo, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(todos)
		return
	}

	if len(todos) == 0 {
		fmt.Fprintln(w, "No todos found")
		return
	}

	// Table format
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tTITLE\tSTATUS\tCREATED\n")
	fmt.Fprintf(tw, "--\t-----\t------\t-------\n")
	for _, todo := range todos {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			todo.ID,
			truncate(todo.Title, 40),
			statusString(todo.Completed),
			todo.CreatedAt.Local().Format("2006-01-02"))
	}
	tw.Flush()
}

// printStats prints todo counts
func printStats(w io.Writer, stats *domain.Stats, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(stats)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total:\t%d\n", stats.Total)
	fmt.Fprintf(tw, "Completed:\t%d\n", stats.Completed)
	fmt.Fprintf(tw, "Pending:\t%d\n", stats.Pending)
	tw.Flush()
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"code":    string(domain.CodeOf(err)),
				"message": err.Error(),
			},
		})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]interface{}{
			"message": message,
		})
		return
	}

	fmt.Fprintln(w, message)
}

// statusString converts the completed flag to a human-readable string
func statusString(completed bool) string {
	if completed {
		return "completed"
	}
	return "pending"
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
