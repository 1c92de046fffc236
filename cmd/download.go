package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hearthhq/hearth/internal/api"
	"github.com/hearthhq/hearth/internal/download"
)

var downloadDir string

var downloadCmd = &cobra.Command{
	Use:   "download [document name]",
	Short: "Download one document without the full UI",
	Long:  "Download signs in, picks a document (by name or interactively), answers its password challenge if it has one, and saves it to the download directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadDir, "dir", "d", "", "destination directory (default from config)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client := newClient(cfg, logger)
	ctx := cmd.Context()

	email, err := askText("Email", "")
	if err != nil {
		return err
	}
	password, err := askPassword("Password")
	if err != nil {
		return err
	}
	if err := client.Login(ctx, email, password); err != nil {
		return fmt.Errorf("signing in: %w", err)
	}

	docs, err := client.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("the household has no documents")
	}

	doc, err := pickDocument(docs, args)
	if err != nil {
		return err
	}

	dest := cfg.DownloadDir
	if downloadDir != "" {
		dest = downloadDir
	}

	path, err := fetchGated(ctx, client, doc, dest)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s to %s\n", doc.Name, path)
	return nil
}

// pickDocument resolves the positional name argument, or prompts when the
// command was run without one.
func pickDocument(docs []api.Document, args []string) (api.Document, error) {
	if len(args) == 1 {
		want := strings.ToLower(args[0])
		for _, doc := range docs {
			if strings.ToLower(doc.Name) == want {
				return doc, nil
			}
		}
		return api.Document{}, fmt.Errorf("no document named %q", args[0])
	}

	names := make([]string, len(docs))
	for i, doc := range docs {
		label := doc.Name
		if doc.RequiresPassword {
			label += " (password protected)"
		}
		names[i] = label
	}
	idx, _, err := askSelect("Document", names)
	if err != nil {
		return api.Document{}, err
	}
	return docs[idx], nil
}

// fetchGated drives the password challenge for protected documents and
// downloads the file. Unprotected documents download immediately.
func fetchGated(ctx context.Context, client *api.Client, doc api.Document, dest string) (string, error) {
	var gate download.Gate
	act := gate.Activate(download.Item{
		Name:             doc.Name,
		RequiresPassword: doc.RequiresPassword,
		VerifyURL:        doc.VerifyURL,
		DownloadURL:      doc.DownloadURL,
	})

	for act.Kind != download.ActionDownload {
		if msg := gate.Err(); msg != "" {
			fmt.Println(msg)
		}
		pw, err := askPassword("Document password")
		if err != nil {
			return "", err
		}
		act = gate.Submit(pw)
		if act.Kind != download.ActionVerify {
			continue
		}
		verifyErr := client.VerifyDocumentPassword(ctx, act.URL, act.Password)
		act = gate.Resolve(act.Generation, verifyErr)
	}

	return client.DownloadDocument(ctx, act.URL, dest)
}
