package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pocketdo/pocketdo/internal/domain"
	"github.com/pocketdo/pocketdo/internal/service"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new todo",
	Long:  `Add a new todo with the given title and an optional description.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		description, _ := cmd.Flags().GetString("description")

		_, store, svc := mustSetup()
		defer store.Close()

		todo, err := svc.Create(context.Background(), args[0], description)
		if err != nil {
			handleError(err)
		}

		printTodo(os.Stdout, todo, jsonOutput)
	},
}

var listTodosCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Long: `List todos, newest first, with optional filtering.

The --status flag accepts "all", "pending", or "completed".
The --from and --to flags bound creation dates (YYYY-MM-DD, inclusive).`,
	Run: func(cmd *cobra.Command, args []string) {
		status, _ := cmd.Flags().GetString("status")
		search, _ := cmd.Flags().GetString("search")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		filter := domain.Filter{
			SearchText: search,
			DateFrom:   from,
			DateTo:     to,
		}
		switch status {
		case "", "all":
		case "pending":
			completed := false
			filter.Completed = &completed
		case "completed":
			completed := true
			filter.Completed = &completed
		default:
			handleError(domain.NewValidationError(
				fmt.Sprintf("status must be one of all, pending, completed, got %q", status)))
		}

		_, store, svc := mustSetup()
		defer store.Close()

		todos, err := svc.List(context.Background(), filter)
		if err != nil {
			handleError(err)
		}

		printTodoList(os.Stdout, todos, jsonOutput)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show todo details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := mustParseID(args[0])

		_, store, svc := mustSetup()
		defer store.Close()

		todo, err := svc.Get(context.Background(), id)
		if err != nil {
			handleError(err)
		}

		printTodo(os.Stdout, todo, jsonOutput)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a todo",
	Long:  `Edit a todo's title or description. Only the flags you pass are changed.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := mustParseID(args[0])
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")

		var input service.UpdateInput
		if cmd.Flags().Changed("title") {
			input.Title = &title
		}
		if cmd.Flags().Changed("description") {
			input.Description = &description
		}

		_, store, svc := mustSetup()
		defer store.Close()

		todo, err := svc.Update(context.Background(), id, input)
		if err != nil {
			handleError(err)
		}

		printTodo(os.Stdout, todo, jsonOutput)
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setCompleted(args[0], true)
	},
}

var undoneCmd = &cobra.Command{
	Use:   "undone <id>",
	Short: "Mark a todo as pending",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setCompleted(args[0], false)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := mustParseID(args[0])
		yes, _ := cmd.Flags().GetBool("yes")

		_, store, svc := mustSetup()
		defer store.Close()

		todo, err := svc.Get(context.Background(), id)
		if err != nil {
			handleError(err)
		}

		if !yes && !confirm(fmt.Sprintf("Delete \"%s\"?", todo.Title)) {
			printSuccess(os.Stdout, "Delete cancelled", jsonOutput)
			return
		}

		if err := svc.Delete(context.Background(), id); err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("Todo %d deleted", id), jsonOutput)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show todo counts",
	Run: func(cmd *cobra.Command, args []string) {
		_, store, svc := mustSetup()
		defer store.Close()

		stats, err := svc.Stats(context.Background())
		if err != nil {
			handleError(err)
		}

		printStats(os.Stdout, stats, jsonOutput)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all todos",
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm("Delete ALL todos?") {
			printSuccess(os.Stdout, "Reset cancelled", jsonOutput)
			return
		}

		_, store, svc := mustSetup()
		defer store.Close()

		if err := svc.Reset(context.Background()); err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, "All todos deleted", jsonOutput)
	},
}

func setCompleted(rawID string, completed bool) {
	id := mustParseID(rawID)

	_, store, svc := mustSetup()
	defer store.Close()

	todo, err := svc.ToggleComplete(context.Background(), id, completed)
	if err != nil {
		handleError(err)
	}

	printTodo(os.Stdout, todo, jsonOutput)
}

func mustParseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		handleError(domain.NewValidationError(fmt.Sprintf("invalid id %q: must be an integer", raw)))
	}
	return id
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	var answer string
	fmt.Fscanln(os.Stdin, &answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}

func init() {
	addCmd.Flags().StringP("description", "m", "", "Todo description")

	listTodosCmd.Flags().String("status", "all", "Filter by status (all, pending, completed)")
	listTodosCmd.Flags().String("search", "", "Filter by substring of title or description")
	listTodosCmd.Flags().String("from", "", "Only todos created on or after this date (YYYY-MM-DD)")
	listTodosCmd.Flags().String("to", "", "Only todos created on or before this date (YYYY-MM-DD)")

	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().StringP("description", "m", "", "New description")

	deleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listTodosCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
}
