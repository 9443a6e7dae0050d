package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/dmarques/tlochat/internal/api"
	"github.com/dmarques/tlochat/internal/attachment"
	"github.com/dmarques/tlochat/internal/config"
	apierrors "github.com/dmarques/tlochat/internal/errors"
	"github.com/dmarques/tlochat/internal/models"
	"github.com/dmarques/tlochat/internal/render"
)

// newServiceClient builds an API client from the stored configuration.
// A missing API key is an immediate, actionable error.
func newServiceClient() (*api.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, cfg, fmt.Errorf("%w: run 'tlochat config set-key' first", apierrors.ErrNoAPIKey)
	}

	client, err := api.NewClient(cfg.BaseURL, cfg.APIKey, time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to create client: %w", err)
	}
	return client, cfg, nil
}

// requestContext returns a context bounded by the configured timeout
func requestContext(cfg config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSeconds)*time.Second)
}

// terminalWidth returns the width of the attached terminal, or a sane
// default when output is not a terminal
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return w - 4
	}
	return 80
}

// runQuery executes a single stateless query and prints the response.
// If rawOutput is true only the response text is printed.
func runQuery(prompt string, rawOutput bool) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" && attachFlag == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	client, cfg, err := newServiceClient()
	if err != nil {
		return err
	}

	if cfg.Verbose && !rawOutput {
		fmt.Fprintf(os.Stderr, "[verbose] Service: %s\n", client.BaseURL())
	}

	var att *models.Attachment
	if attachFlag != "" {
		if kind := models.KindOf("", attachFlag); kind != models.KindPlainText && kind != models.KindWordDocument {
			return fmt.Errorf("only .txt and .docx attachments are supported")
		}
		att, err = attachment.EncodeFile(attachFlag)
		if err != nil {
			return fmt.Errorf("failed to read attachment: %w", err)
		}
		if cfg.Verbose && !rawOutput {
			fmt.Fprintf(os.Stderr, "[verbose] Attachment: %s (%s)\n", att.Name, att.Type)
		}
	}

	var spin *spinner
	if !rawOutput {
		spin = newSpinner("Asking TLO")
		spin.start()
	}

	ctx, cancel := requestContext(cfg)
	defer cancel()

	reply, err := client.Chat(ctx, &api.ChatRequest{
		Message:    prompt,
		Attachment: api.BuildAttachmentPayload(att),
	})
	if err != nil {
		if !rawOutput {
			spin.stopWithError()
		}
		return formatQueryError(err)
	}
	if !rawOutput {
		spin.stopWithSuccess("Response received")
	}

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(reply), 0o644); err != nil {
			return fmt.Errorf("failed to save response: %w", err)
		}
		if !rawOutput {
			fmt.Fprintf(os.Stderr, "Saved to %s\n", outputFlag)
		}
	}

	if rawOutput {
		fmt.Println(reply)
	} else {
		printResponse(reply, cfg.MarkdownStyle)
	}

	if cfg.CopyToClipboard {
		if err := clipboard.WriteAll(reply); err == nil && !rawOutput {
			fmt.Fprintln(os.Stderr, "Copied to clipboard")
		}
	}

	return nil
}

// printResponse renders the reply as markdown inside the response panel
func printResponse(reply, style string) {
	width := terminalWidth()

	rendered := reply
	if r, err := render.NewRenderer(style, width-4); err == nil {
		rendered = r.Render(reply)
	}

	fmt.Println(assistantLabelStyle.Render("✦ TLO"))
	fmt.Println(assistantBubbleStyle.Width(width).Render(rendered))
}

// formatQueryError adds a hint for the common failure modes
func formatQueryError(err error) error {
	switch {
	case apierrors.IsTimeoutError(err):
		return fmt.Errorf("%w\nThe request timed out. Try again or raise request_timeout_seconds", err)
	case apierrors.IsNetworkError(err):
		return fmt.Errorf("%w\nCheck your internet connection", err)
	case apierrors.GetHTTPStatus(err) == 401 || apierrors.GetHTTPStatus(err) == 403:
		return fmt.Errorf("%w\nYour API key was rejected. Run 'tlochat config set-key'", err)
	}
	return err
}
