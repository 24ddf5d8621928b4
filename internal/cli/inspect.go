package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spanview/spanview/pkg/graphio"
	"github.com/spanview/spanview/pkg/layout"
)

// newInspectCmd creates the inspect command, which validates a snapshot file
// and prints layout statistics.
func newInspectCmd() *cobra.Command {
	var showNodes bool

	cmd := &cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Validate a snapshot file and print layout statistics",
		Long: `Inspect loads a hypergraph snapshot from a JSON or YAML file, validates
its structure (unique indices, resolvable references, acyclic child edges),
and prints node counts, the severity tier histogram, and any structural
warnings.

A snapshot that fails validation is rejected as a whole; the first defect
found is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			snapshot, err := graphio.ReadSnapshotFile(args[0])
			if err != nil {
				return err
			}

			built, err := layout.Build(snapshot)
			if err != nil {
				printError("snapshot rejected: %v", err)
				return err
			}
			prog.done(fmt.Sprintf("Loaded %d nodes", built.NodeCount()))

			atoms := 0
			tiers := make(map[layout.Tier]int)
			for _, index := range built.Indices() {
				n, _ := built.Node(index)
				if n.IsAtom() {
					atoms++
				}
				tiers[built.Tier(index)]++
			}

			printSuccess("%s is structurally valid", args[0])
			printStats(built.NodeCount(), atoms, built.MaxWidth())
			printNewline()

			printKeyValue("roots", fmt.Sprintf("%d", len(built.Roots())))
			for _, tier := range []layout.Tier{layout.TierError, layout.TierWarn, layout.TierDebug, layout.TierInfo} {
				if count := tiers[tier]; count > 0 {
					printKeyValue(tier.String(), tierStyle(tier).Render(fmt.Sprintf("%d", count)))
				}
			}

			for _, w := range built.Warnings() {
				printWarning("%s", w)
			}

			if showNodes {
				printNewline()
				for _, index := range built.Indices() {
					n, _ := built.Node(index)
					tier := built.Tier(index)
					printDetail("%4d  %-24s width %-4d %s",
						n.Index, n.DisplayLabel(), n.Width, tierStyle(tier).Render(tier.String()))
				}
			}

			printNewline()
			printNextStep("Browse interactively", fmt.Sprintf("spanview browse %s", args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showNodes, "nodes", false, "list every node with its width and tier")
	return cmd
}
