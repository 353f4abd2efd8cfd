package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type configStep int

const (
	stepAPIKey configStep = iota
	stepBaseURL
	stepModel
	stepEffort
	stepMaxTokens
	stepTemperature
	stepConfirm
)

const wizardTotalSteps = 7

var (
	wizardAccent    = lipgloss.Color("#10A37F")
	wizardTitle     = lipgloss.NewStyle().Bold(true).Foreground(wizardAccent)
	wizardLabel     = lipgloss.NewStyle().Bold(true)
	wizardSelected  = lipgloss.NewStyle().Foreground(wizardAccent).Bold(true)
	wizardDim       = lipgloss.NewStyle().Faint(true)
	wizardSummaryKV = lipgloss.NewStyle().PaddingLeft(2)
)

type configWizard struct {
	step     configStep
	cursor   int
	input    textinput.Model
	config   appConfig
	width    int
	height   int
	done     bool
	canceled bool
}

func newConfigWizard() configWizard {
	ti := textinput.New()
	ti.Placeholder = "sk-..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.Focus()

	temp := float64(defaultTemperature)
	return configWizard{
		step:  stepAPIKey,
		input: ti,
		config: appConfig{
			DefaultModel:    defaultModel,
			ReasoningEffort: defaultEffort,
			MaxTokens:       defaultMaxTokens,
			Temperature:     &temp,
		},
	}
}

func (m configWizard) Init() tea.Cmd {
	return textinput.Blink
}

// isTextStep reports whether the current step reads free text.
func (m configWizard) isTextStep() bool {
	switch m.step {
	case stepAPIKey, stepBaseURL, stepMaxTokens, stepTemperature:
		return true
	}
	return false
}

func (m configWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.isTextStep() {
			return m.updateTextInput(msg)
		}
		return m.updateSelection(msg)
	}

	if m.isTextStep() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m configWizard) updateTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		switch m.step {
		case stepAPIKey:
			m.config.APIKey = value
			m.step = stepBaseURL
			m.prepareInput(textinput.EchoNormal, "", defaultAPIURL)
		case stepBaseURL:
			m.config.BaseURL = value
			if m.config.BaseURL == defaultAPIURL {
				m.config.BaseURL = ""
			}
			m.step = stepModel
			m.cursor = 0
		case stepMaxTokens:
			if value != "" {
				n, err := strconv.ParseInt(value, 10, 64)
				if err != nil || n <= 0 {
					return m, nil // stay until the input parses
				}
				m.config.MaxTokens = n
			}
			m.step = stepTemperature
			m.prepareInput(textinput.EchoNormal, strconv.FormatFloat(defaultTemperature, 'f', -1, 64), "")
		case stepTemperature:
			if value != "" {
				t, err := strconv.ParseFloat(value, 64)
				if err != nil || t < 0 || t > 2 {
					return m, nil
				}
				m.config.Temperature = &t
			}
			m.step = stepConfirm
			m.cursor = 0
		}
		return m, nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.canceled = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// prepareInput resets the text input for the next step.
func (m *configWizard) prepareInput(echo textinput.EchoMode, placeholder, prefill string) {
	m.input.EchoMode = echo
	m.input.EchoCharacter = '*'
	m.input.Placeholder = placeholder
	m.input.SetValue(prefill)
}

func (m configWizard) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := m.currentOptions()
	switch msg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		return m.confirmSelection()
	case tea.KeyEsc, tea.KeyCtrlC:
		m.canceled = true
		return m, tea.Quit
	default:
		switch msg.String() {
		case "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "j":
			if m.cursor < len(opts)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m configWizard) confirmSelection() (tea.Model, tea.Cmd) {
	opts := m.currentOptions()
	switch m.step {
	case stepModel:
		m.config.DefaultModel = opts[m.cursor]
		m.step = stepEffort
		m.cursor = 0
	case stepEffort:
		m.config.ReasoningEffort = opts[m.cursor]
		m.step = stepMaxTokens
		m.prepareInput(textinput.EchoNormal, strconv.Itoa(defaultMaxTokens), "")
	case stepConfirm:
		if opts[m.cursor] == "Cancel" {
			m.canceled = true
			return m, tea.Quit
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m configWizard) currentOptions() []string {
	switch m.step {
	case stepModel:
		return knownModels
	case stepEffort:
		return reasoningEfforts
	case stepConfirm:
		return []string{"Save", "Cancel"}
	default:
		return nil
	}
}

func (m configWizard) stepTitle() string {
	switch m.step {
	case stepAPIKey:
		return "API Key"
	case stepBaseURL:
		return "Base URL"
	case stepModel:
		return "Default Model"
	case stepEffort:
		return "Reasoning Effort"
	case stepMaxTokens:
		return "Max Tokens"
	case stepTemperature:
		return "Temperature"
	case stepConfirm:
		return "Confirm"
	default:
		return ""
	}
}

func (m configWizard) stepDescription() string {
	switch m.step {
	case stepAPIKey:
		return fmt.Sprintf("Enter your OpenAI API key (leave empty to use %s)", apiKeyEnv)
	case stepBaseURL:
		return "API base URL (edit or press Enter to accept default)"
	case stepModel:
		return "Choose the default model for queries"
	case stepEffort:
		return "Reasoning effort hint for the o-series models"
	case stepMaxTokens:
		return "Maximum tokens in the response"
	case stepTemperature:
		return "Response randomness, 0.0-2.0 (ignored by the o3/o1 families)"
	case stepConfirm:
		return "Review your configuration"
	default:
		return ""
	}
}

func (m configWizard) View() string {
	if m.canceled {
		return ""
	}

	var b strings.Builder

	header := wizardTitle.Render("oaipro config")
	stepInfo := wizardDim.Render(fmt.Sprintf("  [%d/%d]", int(m.step)+1, wizardTotalSteps))
	b.WriteString(header + stepInfo + "\n\n")

	b.WriteString(wizardLabel.Render(m.stepTitle()) + "\n")
	b.WriteString(wizardDim.Render(m.stepDescription()) + "\n\n")

	if m.isTextStep() {
		b.WriteString(m.input.View() + "\n\n")
		b.WriteString(wizardDim.Render("Enter = confirm  Esc = cancel"))
		return b.String()
	}

	if m.step == stepConfirm {
		b.WriteString(m.renderSummary())
		b.WriteString("\n")
	}

	opts := m.currentOptions()
	for i, opt := range opts {
		if i == m.cursor {
			b.WriteString(wizardSelected.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + wizardDim.Render("Up/K Down/J = navigate  Enter = confirm  Esc = cancel"))
	return b.String()
}

func (m configWizard) renderSummary() string {
	var b strings.Builder
	kv := func(k, v string) {
		b.WriteString(wizardSummaryKV.Render(
			wizardLabel.Render(k+": ") + v,
		) + "\n")
	}

	masked := m.config.APIKey
	if len(masked) > 8 {
		masked = masked[:4] + strings.Repeat("*", len(masked)-8) + masked[len(masked)-4:]
	} else if len(masked) > 0 {
		masked = strings.Repeat("*", len(masked))
	}
	if masked != "" {
		kv("API Key", masked)
	}
	if m.config.BaseURL != "" {
		kv("Base URL", m.config.BaseURL)
	}
	kv("Default Model", m.config.DefaultModel)
	kv("Reasoning Effort", m.config.ReasoningEffort)
	kv("Max Tokens", strconv.FormatInt(m.config.MaxTokens, 10))
	if m.config.Temperature != nil {
		kv("Temperature", strconv.FormatFloat(*m.config.Temperature, 'f', -1, 64))
	}
	return b.String()
}

func saveConfig(cfg appConfig) error {
	if err := os.MkdirAll(configDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(configPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func runConfigInit() error {
	m := newConfigWizard()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	result, err := p.Run()
	if err != nil {
		return err
	}

	final := result.(configWizard)
	if final.canceled {
		fmt.Fprintln(os.Stderr, "Configuration canceled.")
		return nil
	}
	if !final.done {
		return nil
	}

	if err := saveConfig(final.config); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", configPath())
	return nil
}
