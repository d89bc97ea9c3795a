package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Roblokonha/StudyVault/internal/app"
	"github.com/Roblokonha/StudyVault/internal/learning/recall"
)

// withApp boots the full wiring (config, database, optional clients) for one command.
func withApp(run func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := app.New()
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}

func parseDocumentID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid document id %q: %w", raw, err)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured DB_DRIVER",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app.App, _ []string) error {
			// app.New already migrated; report what was targeted.
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (driver=%s)\n", a.Cfg.DBDriver)
			return nil
		}),
	}
}

func recallCmd() *cobra.Command {
	var blanks, minLen int
	cmd := &cobra.Command{
		Use:   "recall [document-id]",
		Short: "Print a recall deck, or one fill-in-the-blank question for a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				deck, err := a.Services.Recall.Deck(ctx)
				if err != nil {
					return err
				}
				return printJSON(out, deck)
			}
			docID, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			q, err := a.Services.Recall.Question(ctx, docID, recall.Options{BlankCount: blanks, MinWordLength: minLen})
			if err != nil {
				return err
			}
			if q == nil {
				fmt.Fprintln(out, "no question could be generated from this document")
				return nil
			}
			return printJSON(out, q)
		}),
	}
	def := recall.DefaultOptions()
	cmd.Flags().IntVar(&blanks, "blanks", def.BlankCount, "Number of words to blank out")
	cmd.Flags().IntVar(&minLen, "min-len", def.MinWordLength, "Minimum keyword length in runes")
	return cmd
}

func graphCmd() *cobra.Command {
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "graph <document-id>",
		Short: "Export a document's relationship graph (mermaid, json, png) or sync it to Neo4j",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			ctx := cmd.Context()
			docID, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}

			var payload []byte
			switch strings.ToLower(format) {
			case "mermaid":
				text, err := a.Services.Graphs.Mermaid(ctx, docID)
				if err != nil {
					return err
				}
				payload = []byte(text + "\n")
			case "json":
				g, err := a.Services.Graphs.Graph(ctx, docID)
				if err != nil {
					return err
				}
				if payload, err = json.MarshalIndent(g, "", "  "); err != nil {
					return err
				}
			case "png":
				if outPath == "" {
					return fmt.Errorf("--out is required for png output")
				}
				if payload, err = a.Services.Graphs.PNG(ctx, docID); err != nil {
					return err
				}
			case "neo4j":
				res, err := a.Services.Graphs.Sync(ctx, docID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			default:
				return fmt.Errorf("unknown format %q (want mermaid, json, png or neo4j)", format)
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			return os.WriteFile(outPath, payload, 0o644)
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", "mermaid", "Output format: mermaid, json, png or neo4j")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

func mergeCandidatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge-candidates <document-id>",
		Short: "Show which two workspace items an automatic merge would pick",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			docID, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			c, err := a.Services.Workspace.MergeCandidates(cmd.Context(), docID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "source: %s (%s)\ntarget: %s (%s)\n", c.SourceTitle, c.SourceID, c.TargetTitle, c.TargetID)
			return nil
		}),
	}
}

func mergeCmd() *cobra.Command {
	var source, target string
	cmd := &cobra.Command{
		Use:   "merge <document-id>",
		Short: "Merge one workspace item into another (newest pair when ids are omitted)",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app.App, args []string) error {
			docID, err := parseDocumentID(args[0])
			if err != nil {
				return err
			}
			var src, dst *uuid.UUID
			if source != "" || target != "" {
				s, err := uuid.Parse(source)
				if err != nil {
					return fmt.Errorf("invalid --source: %w", err)
				}
				t, err := uuid.Parse(target)
				if err != nil {
					return fmt.Errorf("invalid --target: %w", err)
				}
				src, dst = &s, &t
			}
			outcome, err := a.Services.Workspace.Merge(cmd.Context(), docID, src, dst)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), outcome)
		}),
	}
	cmd.Flags().StringVar(&source, "source", "", "Item to absorb")
	cmd.Flags().StringVar(&target, "target", "", "Item that survives")
	return cmd
}
