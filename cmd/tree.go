package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/flags"
	"github.com/zjrosen/ezwrite/internal/importer"
)

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Print the entity tree a file imports to",
	Long: `Imports the file the same way the editor does and prints the resulting
Book/Document/Paragraph/Sentence/Token tree, one entity per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

var treeStats bool

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().BoolVar(&treeStats, "stats", false, "print entity counts instead of the tree")
}

func runTree(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if err := checkSource(args[0], flags.New(cfg.Flags)); err != nil {
		return err
	}

	tree, root, err := importer.NewLoader().Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !treeStats {
		return tree.Dump(out, root)
	}
	for _, kind := range []document.Kind{document.KindDocument, document.KindParagraph, document.KindSentence, document.KindToken} {
		if _, err := fmt.Fprintf(out, "%-10s %d\n", kind.String()+"s", tree.Count(root, kind)); err != nil {
			return err
		}
	}
	return nil
}
