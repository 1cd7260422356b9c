package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"carrier-contracts/app"
)

func importDriveCmd() *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "import-drive",
		Short: "Upload contract PDFs from a Google Drive folder to the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if folderID == "" {
				folderID = cfg.DriveFolderID
			}
			if folderID == "" {
				return fmt.Errorf("--folder or DRIVE_FOLDER_ID is required")
			}

			repo := app.NewRepository(cfg, logger)
			importService, err := app.NewImportService(cmd.Context(), cfg, repo, logger)
			if err != nil {
				return err
			}
			if importService == nil {
				return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
			}

			result, err := importService.ImportFromDrive(cmd.Context(), folderID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d, skipped %d, failed %d of %d contract PDFs\n",
				result.Imported, result.Skipped, result.Failed, result.Total)
			for _, e := range result.Errors {
				fmt.Fprintf(out, "  ❌ %s\n", e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Google Drive folder id (default: DRIVE_FOLDER_ID)")
	return cmd
}
