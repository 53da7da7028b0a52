package command

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/coregx/revm"
	"github.com/coregx/revm/meta"
	"github.com/coregx/revm/nfa"
)

// caseFile is the document read by revm check.
//
//	cases:
//	  - pattern: "(a+)(b+)"
//	    input: xaabbb
//	    match: true
//	    groups: [1, 6, 1, 3, 3, 6]
//	  - pattern: "(a"
//	    error: true
type caseFile struct {
	Cases []checkCase `json:"cases"`
}

// checkCase is one pattern and input with the expected outcome.
type checkCase struct {
	Pattern string `json:"pattern"`
	Input   string `json:"input,omitempty"`

	// Match is whether the pattern should match the input.
	Match bool `json:"match,omitempty"`

	// Groups, when set, are the expected capture offsets, -1 for groups
	// that do not participate.
	Groups []int `json:"groups,omitempty"`

	// Error expects the pattern to be rejected.
	Error bool `json:"error,omitempty"`
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <case-file>",
		Short: "Run the cases of a YAML file on every engine and verify the expected results.",
		Long: "`check` reads a YAML (or JSON) document holding a list of cases, each a pattern, " +
			"an input and the expected result. Every case is cross-checked across the engines " +
			"and compared with its expectation; revm exits with status 1 if any case fails.",
		Example: "revm check testdata/cases.yaml",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runCheck(args[0])
		},
	}
}

func (a *app) runCheck(path string) error {
	config, _, err := a.engineConfig()
	if err != nil {
		return err
	}

	cases, err := readCases(a.fs, path)
	if err != nil {
		return err
	}
	a.logger.Info("loaded cases", "file", path, "cases", len(cases))

	table := tablewriter.NewWriter(a.stdout)
	table.Header("#", "Pattern", "Input", "Result")

	var failures []string
	for i, c := range cases {
		result := "ok"
		if err := checkOne(config, c); err != nil {
			result = "FAIL"
			failures = append(failures, fmt.Sprintf("case %d: %v", i+1, err))
			a.logger.Debug("case failed", "index", i+1, "pattern", c.Pattern, "input", c.Input, "err", err)
		}
		if err := table.Append([]string{strconv.Itoa(i + 1), c.Pattern, strconv.Quote(c.Input), result}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, f := range failures {
		fmt.Fprintln(a.stdout, f)
	}
	fmt.Fprintf(a.stdout, "%d cases, %d failed\n", len(cases), len(failures))

	if len(failures) > 0 {
		return errFailed
	}
	return nil
}

func readCases(fs afero.Fs, path string) ([]checkCase, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var doc caseFile
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(doc.Cases) == 0 {
		return nil, fmt.Errorf("%s: no cases", path)
	}
	return doc.Cases, nil
}

// checkOne compiles and runs a single case. A nil error means the case
// passed.
func checkOne(config meta.Config, c checkCase) error {
	re, err := revm.CompileWithConfig(c.Pattern, config)
	if c.Error {
		if err == nil {
			return errors.New("compiled, want an error")
		}
		return nil
	}
	if err != nil {
		return err
	}

	if err := re.CrossCheck(c.Input); err != nil {
		return err
	}

	got, err := re.TryFindStringSubmatchIndex(c.Input)
	if err != nil {
		return err
	}
	if matched := got != nil; matched != c.Match {
		return fmt.Errorf("match = %v, want %v", matched, c.Match)
	}
	if c.Groups != nil && !slices.Equal(got, c.Groups) {
		return fmt.Errorf("groups = %s, want %s", nfa.Slots(got), nfa.Slots(c.Groups))
	}
	return nil
}
