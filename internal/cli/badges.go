package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

func newBadgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Manage staged badge batches",
	}

	cmd.AddCommand(newBadgesCreateCmd())
	cmd.AddCommand(newBadgesShowCmd())
	cmd.AddCommand(newBadgesDeleteCmd())
	cmd.AddCommand(newBadgesAddCmd())
	cmd.AddCommand(newBadgesRemoveCmd())
	cmd.AddCommand(newBadgesImportCmd())
	cmd.AddCommand(newBadgesExportCmd())
	cmd.AddCommand(newBadgesRenderCmd())
	cmd.AddCommand(newBadgesSyncCmd())

	return cmd
}

func newBadgesCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new empty badge batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Batch
			if err := client.Post("/api/v1/badges/batches", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newBadgesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <batch-id>",
		Short: "Show a badge batch and its staged employees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Batch
			if err := client.Get("/api/v1/badges/batches/"+args[0], &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newBadgesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <batch-id>",
		Short: "Delete a staged badge batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/badges/batches/" + args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Batch deleted")
			return nil
		},
	}
}

func newBadgesAddCmd() *cobra.Command {
	var employeeID, phone string

	cmd := &cobra.Command{
		Use:   "add <batch-id> <name>",
		Short: "Stage an employee in a batch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"name":        args[1],
				"employee_id": employeeID,
				"phone":       phone,
			}

			var result BatchEmployee
			if err := client.Post("/api/v1/badges/batches/"+args[0]+"/employees", body, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee-id", "", "Internal employee identifier")
	cmd.Flags().StringVar(&phone, "phone", "", "Employee phone number")

	return cmd
}

func newBadgesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <batch-id> <employee-uuid>",
		Short: "Remove a staged employee from a batch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/badges/batches/" + args[0] + "/employees/" + args[1]); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Employee removed")
			return nil
		},
	}
}

func newBadgesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <batch-id> <csv-file>",
		Short: "Import employees into a batch from a CSV file",
		Long: `Import employees from a CSV file with a header row. Recognized
columns are name, employee_id and phone; rows without a name are skipped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			respBody, err := client.DoRaw(http.MethodPost, "/api/v1/badges/batches/"+args[0]+"/import", f, "text/csv")
			if err != nil {
				return err
			}

			var result ImportResult
			if err := unmarshalResult(respBody, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newBadgesExportCmd() *cobra.Command {
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "export <batch-id>",
		Short: "Export a batch as a CSV mapping or a zip of badge images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "zip" {
				return fmt.Errorf("invalid format %q: must be 'csv' or 'zip'", format)
			}

			data, err := client.DoRaw(http.MethodGet, "/api/v1/badges/batches/"+args[0]+"/export."+format, nil, "")
			if err != nil {
				return err
			}

			path := outPath
			if path == "" {
				path = fmt.Sprintf("batch-%s.%s", args[0], format)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Wrote " + path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format: csv, zip")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file path")

	return cmd
}

func newBadgesRenderCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "render <batch-id> <employee-uuid>",
		Short: "Render a single badge QR image to a PNG file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.DoRaw(http.MethodGet, "/api/v1/badges/batches/"+args[0]+"/employees/"+args[1]+"/badge.png", nil, "")
			if err != nil {
				return err
			}

			path := outPath
			if path == "" {
				path = args[1] + ".png"
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Wrote " + path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Output file path")

	return cmd
}

func newBadgesSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <batch-id>",
		Short: "Sync a staged batch into the employee directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SyncResult
			if err := client.Post("/api/v1/badges/batches/"+args[0]+"/sync", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
