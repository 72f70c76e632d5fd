package create

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/create-vclight/internal/models"
	"github.com/jakoblorz/create-vclight/internal/tui"
)

// Flow asks for the project options using huh forms.
type Flow struct {
	in    io.Reader
	out   io.Writer
	theme *huh.Theme
}

// NewFlow constructs a Flow reading keys from in and drawing to out.
func NewFlow(in io.Reader, out io.Writer) *Flow {
	return &Flow{
		in:    in,
		out:   out,
		theme: tui.NewHuhTheme(),
	}
}

// Run executes the forms sequentially; returns nil options on user abort.
func (f *Flow) Run(name string) (*models.Options, error) {
	template, err := f.selectTemplate(name)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	plugins, err := f.selectPlugins()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	return &models.Options{
		Template: template,
		Plugins:  plugins,
	}, nil
}

func (f *Flow) programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(f.in),
		tea.WithOutput(f.out),
	}
}

func (f *Flow) selectTemplate(name string) (models.TemplateKind, error) {
	selected := string(models.TemplateRouter)

	kinds := []models.TemplateKind{models.TemplateRouter, models.TemplateBlank}
	opts := make([]huh.Option[string], 0, len(kinds))
	for _, kind := range kinds {
		opts = append(opts, huh.NewOption(kind.Description(), kind.String()))
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&selected),
		).
			Title("Template").
			Description(fmt.Sprintf("Which template should %s start from?", name)),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(f.programOptions()...).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return "", err
	}

	return models.ParseTemplateKind(selected)
}

func (f *Flow) selectPlugins() ([]models.Plugin, error) {
	var selected []string

	opts := make([]huh.Option[string], 0, len(models.AllPlugins))
	for _, plugin := range models.AllPlugins {
		opts = append(opts, huh.NewOption(plugin.Description(), plugin.String()))
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.MultiSelect.Filter.SetEnabled(false)
	keyMap.MultiSelect.Toggle.SetKeys(" ")
	keyMap.MultiSelect.Toggle.SetHelp("space", "toggle selection")
	keyMap.MultiSelect.Submit.SetKeys("enter")
	keyMap.MultiSelect.Submit.SetHelp("enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Options(opts...).
				Value(&selected),
		).
			Title("Plugins").
			Description("Select the tooling to add."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(f.programOptions()...).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return nil, err
	}

	plugins := make([]models.Plugin, 0, len(selected))
	for _, s := range selected {
		plugin, err := models.ParsePlugin(s)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, plugin)
	}
	return plugins, nil
}
