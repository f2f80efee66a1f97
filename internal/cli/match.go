package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cgraph/pkg/cg"
	"github.com/matzehuels/cgraph/pkg/config"
	"github.com/matzehuels/cgraph/pkg/match"
)

type matchOpts struct {
	preset     string
	graph      string
	fold       string
	maxResults int
	loose      bool
}

// matchCommand creates the match command.
func (c *CLI) matchCommand() *cobra.Command {
	var opts matchOpts

	cmd := &cobra.Command{
		Use:   "match [first] [second]",
		Short: "Match two graph fixtures",
		Long: `Match the graph fixture <first> against <second>.

The [match] section of the configuration file selects the matching modes.
Flags override single settings. Missing fixture names are picked
interactively.`,
		Example: `  # Project a query onto a data graph
  cgraph match query data --preset projection

  # At most three isomorphisms
  cgraph match a b --preset isomorphism --max 3`,
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: c.completeGraphNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMatch(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.preset, "preset", "", "start from a preset (isomorphism, projection, subgraph)")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "graph mode (complete, subgraph, proper-subgraph, ...)")
	cmd.Flags().StringVar(&opts.fold, "fold", "", "fold setting (none, first, second, both)")
	cmd.Flags().IntVar(&opts.maxResults, "max", -1, "maximum number of mappings (0 for unbounded)")
	cmd.Flags().BoolVar(&opts.loose, "loose", false, "keep mappings whose relations disagree with their concepts")

	return cmd
}

func (c *CLI) runMatch(cmd *cobra.Command, args []string, opts *matchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	f, l, err := c.loadLattice()
	if err != nil {
		return err
	}
	if opts.preset != "" {
		f.Match.Preset = opts.preset
	}
	cfg, err := f.MatchConfig()
	if err != nil {
		return fmt.Errorf("match config: %w", err)
	}
	cfg, err = applyMatchFlags(cfg, opts)
	if err != nil {
		return fmt.Errorf("match config: %w", err)
	}

	names := append([]string(nil), args...)
	for _, title := range []string{"Select First Graph", "Select Second Graph"}[len(names):] {
		name, err := pickFixture(f, title)
		if err != nil {
			return fmt.Errorf("pick fixture: %w", err)
		}
		if name == "" {
			printWarning("No selection made")
			return nil
		}
		names = append(names, name)
	}
	firstName, secondName := names[0], names[1]

	first, err := f.BuildGraph(firstName, l)
	if err != nil {
		return fmt.Errorf("build %s: %w", firstName, err)
	}
	second, err := f.BuildGraph(secondName, l)
	if err != nil {
		return fmt.Errorf("build %s: %w", secondName, err)
	}

	m := match.NewMatcher(
		match.WithLogger(logger),
		match.WithCoreferences(corefUnion{first.Coreferences, second.Coreferences}),
	)
	logger.Debug("matching", "first", firstName, "second", secondName, "config", cfg)

	describeFixture(firstName, first)
	describeFixture(secondName, second)

	prog := newProgress(logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Matching %s against %s...", firstName, secondName))
	spinner.Start()
	res, err := m.MatchGraphs(first.Graph, second.Graph, cfg)
	if err != nil {
		spinner.StopWithError("Match failed")
		return fmt.Errorf("match: %w", err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Matched %s against %s", firstName, secondName))

	if !res.Matched() {
		printWarning("No mapping from %s to %s under %s matching", firstName, secondName, cfg.Graph())
		return nil
	}
	printSuccess("%s matches %s", StyleHighlight.Render(firstName), StyleHighlight.Render(secondName))
	printStats(fmt.Sprintf("%d mappings", len(res.Mappings())), cfg.Graph().String())
	for i, mp := range res.Mappings() {
		printKeyValue(fmt.Sprintf("#%d", i+1), describeMapping(mp))
	}
	return nil
}

// completeGraphNames offers the fixture names of the configuration file.
func (c *CLI) completeGraphNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) >= 2 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	f, err := config.Load(c.configPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return f.GraphNames(), cobra.ShellCompDirectiveNoFileComp
}

func applyMatchFlags(cfg *match.Config, opts *matchOpts) (*match.Config, error) {
	var extra []match.Option
	if opts.graph != "" {
		g, err := match.ParseGraphMode(opts.graph)
		if err != nil {
			return nil, err
		}
		extra = append(extra, match.WithGraph(g))
	}
	if opts.fold != "" {
		fold, err := match.ParseFold(opts.fold)
		if err != nil {
			return nil, err
		}
		extra = append(extra, match.WithFold(fold))
	}
	if opts.maxResults >= 0 {
		extra = append(extra, match.WithMaxResults(opts.maxResults))
	}
	if opts.loose {
		extra = append(extra, match.WithConnected(false))
	}
	if len(extra) == 0 {
		return cfg, nil
	}
	return cfg.With(extra...)
}

// describeFixture prints the size and shape of a built fixture.
func describeFixture(name string, fx *config.Fixture) {
	shape := "connected"
	if !fx.Graph.Connected() {
		shape = "disconnected"
	}
	printKeyValue(name, StyleDim.Render(fmt.Sprintf("%d concepts · %d relations · %d coreference sets · %s",
		len(fx.Graph.Concepts()), len(fx.Graph.Relations()), fx.Coreferences.Sets(), shape)))
}

func describeMapping(mp *match.Mapping) string {
	s := ""
	for i, p := range mp.Concepts {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s %s %s", p.First, iconArrow, p.Second)
	}
	if len(mp.Relations) > 0 {
		s += StyleDim.Render(fmt.Sprintf(" · %d relations", len(mp.Relations)))
	}
	return s
}

// corefUnion answers coreference questions across fixtures. Each concept
// belongs to exactly one fixture, so at most one member knows it.
type corefUnion []*cg.Coreferences

func (u corefUnion) AreCoreferent(a, b *cg.Concept) bool {
	for _, cr := range u {
		if cr.AreCoreferent(a, b) {
			return true
		}
	}
	return false
}

func (u corefUnion) Closure(c *cg.Concept) []*cg.Concept {
	for _, cr := range u {
		if closure := cr.Closure(c); len(closure) > 1 {
			return closure
		}
	}
	return []*cg.Concept{c}
}
