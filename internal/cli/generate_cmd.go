package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/export"
	"github.com/alexanderramin/studyplan/internal/importer"
	"github.com/spf13/cobra"
)

// defaultSubjects is used when nothing names any subject and no terminal is
// available for the wizard.
const defaultSubjects = "Math, Physics, Chemistry"

type generateOptions struct {
	subjects string
	hours    float64
	days     *daysValue
	variant  string
	weights  []string
	goals    []string
	progress []string
	daily    []string
	file     string
	exports  []string
	json     bool
	edit     bool
}

func newGenerateCmd(app *App) *cobra.Command {
	opts := &generateOptions{
		hours:   app.Config.BudgetHours,
		days:    newDaysValue(app.Config.Days),
		variant: string(app.Config.Variant),
	}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"plan", "gen"},
		Short:   "Build a weekly study plan",
		Long: `Split a weekly study budget across subjects by weight, cap each subject
at its goal, and spread the result evenly over the selected days.

With no --subjects or --file on an interactive terminal, a short wizard
asks for the inputs.`,
		Example: `  studyplan generate --subjects "Math, Physics" --hours 15
  studyplan generate --variant advanced --subjects Calculus,History \
      --weight Calculus=5 --goal Calculus=12 --progress Calculus=3
  studyplan generate --file week.yaml --daily Math=3 --export week.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.subjects, "subjects", "s", "", "comma-separated subject names")
	f.Float64VarP(&opts.hours, "hours", "H", opts.hours, "weekly study budget in hours")
	f.Var(opts.days, "days", "comma-separated study days, e.g. Mon,Wed,Fri")
	f.StringVar(&opts.variant, "variant", opts.variant, "allocation variant: simple or advanced")
	f.StringArrayVar(&opts.weights, "weight", nil, "subject weight or difficulty as NAME=N (repeatable)")
	f.StringArrayVar(&opts.goals, "goal", nil, "subject goal hours as NAME=H (repeatable)")
	f.StringArrayVar(&opts.progress, "progress", nil, "hours already studied as NAME=H (repeatable)")
	f.StringArrayVar(&opts.daily, "daily", nil, "manual daily hours as NAME=H (repeatable)")
	f.StringVarP(&opts.file, "file", "f", "", "read plan input from a YAML or JSON file")
	f.StringArrayVarP(&opts.exports, "export", "o", nil, "write the plan to a file; format follows the extension (repeatable)")
	f.BoolVar(&opts.json, "json", false, "print the plan as JSON")
	f.BoolVar(&opts.edit, "edit", false, "adjust daily hours interactively before output")

	return cmd
}

func runGenerate(cmd *cobra.Command, app *App, opts *generateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.edit && !app.interactive() {
		return fmt.Errorf("--edit needs an interactive terminal")
	}
	exportFormats := make([]string, len(opts.exports))
	for i, path := range opts.exports {
		format, err := export.FormatForPath(path)
		if err != nil {
			return err
		}
		exportFormats[i] = format
	}

	req, err := buildRequest(ctx, cmd, app, opts)
	if err != nil {
		return err
	}

	plan, err := app.Plans.Generate(ctx, req)
	if err != nil {
		return err
	}

	if opts.edit {
		plan, err = app.runEditor(ctx, plan)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.json {
		if err := writeJSON(out, plan); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, formatter.FormatPlan(plan))
	}

	// Confirmations go to stderr under --json so stdout stays parseable.
	notices := out
	if opts.json {
		notices = cmd.ErrOrStderr()
	}
	for i, path := range opts.exports {
		if err := exportPlan(ctx, app, cmd.ErrOrStderr(), plan, path, exportFormats[i]); err != nil {
			return err
		}
		fmt.Fprint(notices, formatter.FormatExported(path, exportFormats[i]))
	}
	return nil
}

// buildRequest layers inputs: config defaults, then the plan file, then the
// wizard (only when nothing named a subject), then explicit flags.
func buildRequest(ctx context.Context, cmd *cobra.Command, app *App, opts *generateOptions) (contract.GenerateRequest, error) {
	req := contract.GenerateRequest{
		Variant:     string(app.Config.Variant),
		BudgetHours: app.Config.BudgetHours,
		Days:        append([]string(nil), app.Config.Days...),
	}

	if opts.file != "" {
		loaded, err := importer.Load(opts.file, importer.Defaults{
			BudgetHours: app.Config.BudgetHours,
			Days:        app.Config.Days,
			Variant:     app.Config.Variant,
		})
		if err != nil {
			return req, err
		}
		req = loaded
	}

	flags := cmd.Flags()
	switch {
	case opts.subjects != "":
		req.Subjects = mergeSubjectNames(req.Subjects, domain.ParseSubjectNames(opts.subjects))
	case opts.file == "" && app.interactive():
		if err := app.runWizard(ctx, &req); err != nil {
			return req, err
		}
	case opts.file == "":
		req.Subjects = mergeSubjectNames(nil, domain.ParseSubjectNames(defaultSubjects))
	}

	if flags.Changed("hours") {
		req.BudgetHours = opts.hours
	}
	if flags.Changed("days") {
		req.Days = opts.days.days.Names()
	}
	if flags.Changed("variant") {
		req.Variant = opts.variant
	}

	if err := applySubjectFlags(&req, opts); err != nil {
		return req, err
	}
	return req, nil
}

// mergeSubjectNames builds the subject list for names, keeping any entry
// already loaded for the same subject.
func mergeSubjectNames(existing []contract.SubjectInput, names []string) []contract.SubjectInput {
	byKey := make(map[string]contract.SubjectInput, len(existing))
	for _, s := range existing {
		byKey[domain.SubjectKey(s.Name)] = s
	}
	out := make([]contract.SubjectInput, 0, len(names))
	for _, n := range names {
		if s, ok := byKey[domain.SubjectKey(n)]; ok {
			s.Name = n
			out = append(out, s)
			continue
		}
		out = append(out, contract.SubjectInput{Name: n})
	}
	return out
}

func applySubjectFlags(req *contract.GenerateRequest, opts *generateOptions) error {
	index := make(map[string]int, len(req.Subjects))
	for i, s := range req.Subjects {
		index[domain.SubjectKey(s.Name)] = i
	}

	var errs []error
	apply := func(flag string, pairs []string, set func(s *contract.SubjectInput, v float64)) {
		values, err := parseAssignments(flag, pairs)
		if err != nil {
			errs = append(errs, err)
			return
		}
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			i, ok := index[domain.SubjectKey(name)]
			if !ok {
				errs = append(errs, domain.NewInvalidInput("--"+flag, fmt.Sprintf("unknown subject %q", name)))
				continue
			}
			set(&req.Subjects[i], values[name])
		}
	}

	apply("weight", opts.weights, func(s *contract.SubjectInput, v float64) { s.Weight = domain.Float64Ptr(v) })
	apply("goal", opts.goals, func(s *contract.SubjectInput, v float64) { s.Goal = domain.Float64Ptr(v) })
	apply("progress", opts.progress, func(s *contract.SubjectInput, v float64) { s.Progress = v })
	apply("daily", opts.daily, func(s *contract.SubjectInput, v float64) {
		if req.Overrides == nil {
			req.Overrides = make(map[string]float64)
		}
		req.Overrides[s.Name] = v
	})

	return domain.JoinInvalidInput(errs)
}

func writeJSON(w io.Writer, plan *contract.PlanResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	return nil
}

// exportPlan writes one export file. A failed export leaves no partial file
// behind.
func exportPlan(ctx context.Context, app *App, progress io.Writer, plan *contract.PlanResponse, path, format string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing export file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if app.interactive() {
		stop := formatter.StartSpinner(progress, "Exporting "+filepath.Base(path))
		defer stop()
	}

	if err := app.Exports.Export(ctx, f, plan, format); err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	return nil
}
