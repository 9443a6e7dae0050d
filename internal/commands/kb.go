package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmarques/tlochat/internal/knowledge"
	"github.com/dmarques/tlochat/internal/models"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the shared knowledge base",
	Long: `List and upload documents in the shared knowledge base.

Uploaded documents ground every conversation with the assistant.
Only .txt and .docx files are accepted.`,
}

var kbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge base documents",
	RunE:  runKBList,
}

var kbUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document to the knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE:  runKBUpload,
}

func init() {
	kbCmd.AddCommand(kbListCmd)
	kbCmd.AddCommand(kbUploadCmd)
}

func runKBList(cmd *cobra.Command, args []string) error {
	client, cfg, err := newServiceClient()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cfg)
	defer cancel()

	files, err := client.ListKnowledgeFiles(ctx)
	if err != nil {
		return formatQueryError(err)
	}

	if len(files) == 0 {
		fmt.Println("The knowledge base is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSIZE\tADDED")
	_, _ = fmt.Fprintln(w, "--\t----\t----\t-----")

	for _, f := range files {
		added := ""
		if !f.CreatedAt.IsZero() {
			added = f.CreatedAt.Format("2006-01-02 15:04")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", f.ID, f.Name, f.Size, added)
	}

	return w.Flush()
}

func runKBUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := knowledge.ValidateUpload(name, info.Size()); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Reject unreadable documents before they hit the service.
	text, err := knowledge.ExtractText(data, models.KindOf("", name))
	if err != nil {
		return fmt.Errorf("document is not readable: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("document contains no readable text")
	}

	client, cfg, err := newServiceClient()
	if err != nil {
		return err
	}

	spin := newSpinner("Uploading " + name)
	spin.start()

	ctx, cancel := requestContext(cfg)
	defer cancel()

	fd, err := client.UploadKnowledgeFile(ctx, data, name)
	if err != nil {
		spin.stopWithError()
		return formatQueryError(err)
	}
	spin.stopWithSuccess(fmt.Sprintf("Uploaded %s (id %s)", fd.Name, fd.ID))

	return nil
}
