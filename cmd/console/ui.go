package main

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/nitecrawlers/internal/engine"
	"github.com/jwebster45206/nitecrawlers/internal/handlers"
	"github.com/jwebster45206/nitecrawlers/pkg/consequence"
	"github.com/jwebster45206/nitecrawlers/pkg/item"
	"github.com/jwebster45206/nitecrawlers/pkg/ledger"
	"github.com/jwebster45206/nitecrawlers/pkg/profile"
	"github.com/jwebster45206/nitecrawlers/pkg/recognition"
)

type mode int

const (
	modeLoading mode = iota
	modeOnboarding
	modePlay
	modeLabel
	modeConfirmReset
	modeQuit
)

// growthNames label each growth stage.
var growthNames = []string{"Seed", "Sprout", "Seedling", "Sapling", "Young Tree", "Money Tree"}

// recentTransactions is how many ledger rows the side panel shows.
const recentTransactions = 6

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	api *apiClient
	rng *rand.Rand

	mode     mode
	prevMode mode // restored when the quit modal is dismissed
	width    int
	height   int
	ready    bool
	loading  bool
	err      error
	status   string

	profile  *handlers.ProfileResponse
	catalog  *recognition.Catalog
	current  *item.ScannedItem
	txs      []ledger.Transaction
	lastTip  string
	messages []string

	frequency profile.Frequency
	input     textinput.Model
	logView   viewport.Model
	metaView  viewport.Model
	spinner   spinner.Model
}

type profileMsg struct {
	profile *handlers.ProfileResponse
	err     error
}

type catalogMsg struct {
	catalog *recognition.Catalog
	err     error
}

type itemMsg struct {
	item *item.ScannedItem
	err  error
}

type decisionMsg struct {
	result *engine.Result
	err    error
}

type transactionsMsg struct {
	txs []ledger.Transaction
	err error
}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(3)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // orange

	tipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")). // pale yellow
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func NewConsoleUI(api *apiClient) ConsoleUI {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ConsoleUI{
		api:       api,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		mode:      modeLoading,
		loading:   true,
		frequency: profile.FrequencyWeekly,
		input:     ti,
		logView:   viewport.New(50, 20),
		metaView:  viewport.New(24, 20),
		spinner:   sp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(m.loadProfile(), m.loadCatalog(), m.spinner.Tick)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refreshViews()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case profileMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			if m.mode == modeOnboarding {
				m.input.Focus()
			}
			return m, nil
		}
		m.err = nil
		m.profile = msg.profile
		switch m.mode {
		case modeLoading, modeConfirmReset, modeOnboarding:
			if m.profile.Profile.Onboarded {
				m.mode = modePlay
			} else {
				m.startOnboarding()
			}
		}
		m.refreshViews()
		return m, m.loadTransactions()

	case catalogMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.catalog = msg.catalog
		return m, nil

	case itemMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.current = msg.item
			m.addMessage(fmt.Sprintf("You spotted %s for $%d.", itemStyle.Render(m.current.DisplayName()), m.current.Price))
			if fi := m.current.FinancialInfo; fi != nil {
				m.addMessage(promptStyle.Render(fmt.Sprintf("%s: %s %s", fi.Term, fi.SimpleDefinition, fi.KidExplanation)))
			}
		}
		m.refreshViews()
		return m, nil

	case decisionMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.refreshViews()
			return m, nil
		}
		m.err = nil
		m.applyResult(msg.result)
		m.refreshViews()
		return m, tea.Batch(m.loadProfile(), m.loadTransactions())

	case transactionsMsg:
		if msg.err == nil {
			m.txs = msg.txs
			m.refreshViews()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.mode == modeQuit {
			return m, tea.Quit
		}
		m.prevMode = m.mode
		m.mode = modeQuit
		return m, nil
	}

	switch m.mode {
	case modeQuit:
		switch msg.String() {
		case "y", "Y", "enter":
			return m, tea.Quit
		case "n", "N", "esc":
			m.mode = m.prevMode
		}
		return m, nil

	case modeConfirmReset:
		switch msg.String() {
		case "y", "Y":
			m.loading = true
			m.current = nil
			m.messages = nil
			m.lastTip = ""
			return m, m.resetProfile()
		case "n", "N", "esc":
			m.mode = modePlay
		}
		return m, nil

	case modeOnboarding:
		switch msg.Type {
		case tea.KeyTab:
			if m.frequency == profile.FrequencyWeekly {
				m.frequency = profile.FrequencyMonthly
			} else {
				m.frequency = profile.FrequencyWeekly
			}
			return m, nil
		case tea.KeyEnter:
			amount, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
			if err != nil || amount < 0 {
				m.err = fmt.Errorf("allowance must be a whole number of dollars")
				return m, nil
			}
			m.loading = true
			m.input.Blur()
			return m, m.onboard(amount, m.frequency)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modeLabel:
		switch msg.Type {
		case tea.KeyEsc:
			m.mode = modePlay
			m.input.Blur()
			return m, nil
		case tea.KeyEnter:
			label := strings.TrimSpace(m.input.Value())
			m.mode = modePlay
			m.input.Blur()
			if label == "" {
				return m, nil
			}
			m.loading = true
			return m, m.recognize(label)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modePlay:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "q", "esc":
			m.prevMode = m.mode
			m.mode = modeQuit
		case "n":
			return m.scanRandom()
		case "/":
			m.mode = modeLabel
			m.input.Reset()
			m.input.Placeholder = "What did you find?"
			m.input.Focus()
			return m, textinput.Blink
		case "b":
			return m.decide(consequence.ActionBuy)
		case "l":
			return m.decide(consequence.ActionLater)
		case "s":
			return m.decide(consequence.ActionSkip)
		case "c":
			m.copyTip()
		case "r":
			m.mode = modeConfirmReset
		default:
			var cmd tea.Cmd
			m.logView, cmd = m.logView.Update(msg)
			return m, cmd
		}
		m.refreshViews()
	}
	return m, nil
}

func (m *ConsoleUI) startOnboarding() {
	m.mode = modeOnboarding
	m.frequency = profile.FrequencyWeekly
	m.input.Reset()
	m.input.Placeholder = strconv.Itoa(profile.DefaultAllowance)
	m.input.Focus()
}

func (m ConsoleUI) scanRandom() (tea.Model, tea.Cmd) {
	if m.catalog == nil {
		m.err = fmt.Errorf("catalog not loaded yet")
		return m, nil
	}
	it, err := m.catalog.Random(m.rng)
	return m.Update(itemMsg{item: it, err: err})
}

func (m ConsoleUI) decide(action consequence.Action) (tea.Model, tea.Cmd) {
	if m.current == nil {
		m.err = fmt.Errorf("scan something first: press n or /")
		m.refreshViews()
		return m, nil
	}
	m.loading = true
	m.refreshViews()
	return m, m.sendDecision(action, m.current)
}

func (m *ConsoleUI) applyResult(res *engine.Result) {
	style := goodStyle
	if res.LiteracyDelta < 0 {
		style = badStyle
	}
	m.addMessage(style.Render(res.Message))
	if res.SavingsPrediction > 0 {
		m.addMessage(goodStyle.Render(fmt.Sprintf("Skip it every week and you keep $%d a month.", res.SavingsPrediction)))
	}
	if res.SimilarMatch != "" && res.SimilarMatch != res.ItemName {
		m.addMessage(promptStyle.Render("Looks a lot like your " + res.SimilarMatch + "."))
	}
	m.addMessage(tipStyle.Render("Tip: " + res.Tip))
	if !res.Persisted {
		m.addMessage(errorStyle.Render("Progress could not be saved this time."))
	}
	m.lastTip = res.Tip
	m.current = nil
}

func (m *ConsoleUI) copyTip() {
	if m.lastTip == "" {
		m.status = "No tip to copy yet"
		return
	}
	if err := clipboard.WriteAll(m.lastTip); err != nil {
		m.status = "Clipboard unavailable"
		return
	}
	m.status = "Tip copied"
}

func (m *ConsoleUI) addMessage(s string) {
	m.messages = append(m.messages, s)
}

func (m *ConsoleUI) resize() {
	logWidth := int(float64(m.width)*0.68) - 4
	metaWidth := m.width - logWidth - 6
	m.logView.Width = logWidth - 2
	m.logView.Height = m.height - 8
	m.metaView.Width = metaWidth - 2
	m.metaView.Height = m.height - 3
	m.input.Width = logWidth - 8
}

// refreshViews rewraps everything for the current width.
func (m *ConsoleUI) refreshViews() {
	wrap := m.logView.Width - 4
	if wrap < 20 {
		wrap = 20
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("NITECRAWLERS") + "\n\n")
	b.WriteString("Scan things you want, then decide: buy it, save it for later, or skip it.\n\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", wrap)) + "\n\n")
	for _, msg := range m.messages {
		b.WriteString(wordwrap.String(msg, wrap) + "\n\n")
	}
	m.logView.SetContent(b.String())
	m.logView.GotoBottom()

	m.metaView.SetContent(m.writeMetadata())
}

func (m ConsoleUI) writeMetadata() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("WALLET") + "\n\n")
	if m.profile == nil {
		b.WriteString("Loading...\n")
		return b.String()
	}

	p := m.profile.Profile
	stage := p.GrowthStage
	if stage < 0 || stage >= len(growthNames) {
		stage = 0
	}
	b.WriteString(fmt.Sprintf("Money:    $%d\n", p.Money))
	b.WriteString(fmt.Sprintf("Literacy: %d/%d\n", p.Literacy, profile.MaxLiteracy))
	b.WriteString(fmt.Sprintf("          %s\n", meter(p.Literacy, profile.MaxLiteracy, 16)))
	b.WriteString(fmt.Sprintf("Growth:   %s (%d)\n", growthNames[stage], p.GrowthStage))
	b.WriteString(fmt.Sprintf("Day:      %d\n", p.Day))
	b.WriteString(fmt.Sprintf("Allowance: $%d %s\n\n", p.AllowanceAmount, p.AllowanceFrequency))

	s := m.profile.Statistics
	b.WriteString(titleStyle.Render("STATS") + "\n\n")
	b.WriteString(fmt.Sprintf("Bought:  %d ($%d)\n", s.WantsBought, s.TotalSpent))
	b.WriteString(fmt.Sprintf("Skipped: %d ($%d)\n", s.Skipped, s.TotalSaved))
	b.WriteString(fmt.Sprintf("Later:   %d\n\n", s.SavedForLater))

	if len(m.txs) > 0 {
		b.WriteString(titleStyle.Render("RECENT") + "\n\n")
		start := max(0, len(m.txs)-recentTransactions)
		for _, tx := range m.txs[start:] {
			b.WriteString(fmt.Sprintf("D%-3d %-5s %s %+d\n", tx.Day, tx.Action, truncate(tx.ItemName, 12), tx.AmountDelta))
		}
		b.WriteString("\n")
	}

	b.WriteString("Keys:\n")
	b.WriteString("• n: Scan random\n")
	b.WriteString("• /: Type an item\n")
	b.WriteString("• b/l/s: Buy/Later/Skip\n")
	b.WriteString("• c: Copy tip\n")
	b.WriteString("• r: Start over\n")
	b.WriteString("• q: Quit\n")
	return b.String()
}

func meter(v, maxV, width int) string {
	filled := 0
	if maxV > 0 {
		filled = v * width / maxV
	}
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + separatorStyle.Render(strings.Repeat("░", width-filled))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m ConsoleUI) loadProfile() tea.Cmd {
	return func() tea.Msg {
		p, err := m.api.getProfile()
		return profileMsg{p, err}
	}
}

func (m ConsoleUI) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		c, err := m.api.catalog()
		return catalogMsg{c, err}
	}
}

func (m ConsoleUI) loadTransactions() tea.Cmd {
	return func() tea.Msg {
		txs, err := m.api.transactions()
		return transactionsMsg{txs, err}
	}
}

func (m ConsoleUI) onboard(amount int, freq profile.Frequency) tea.Cmd {
	return func() tea.Msg {
		p, err := m.api.onboard(amount, string(freq))
		return profileMsg{p, err}
	}
}

func (m ConsoleUI) resetProfile() tea.Cmd {
	return func() tea.Msg {
		p, err := m.api.reset()
		return profileMsg{p, err}
	}
}

func (m ConsoleUI) recognize(label string) tea.Cmd {
	return func() tea.Msg {
		it, err := m.api.recognize(label)
		return itemMsg{it, err}
	}
}

func (m ConsoleUI) sendDecision(action consequence.Action, it *item.ScannedItem) tea.Cmd {
	return func() tea.Msg {
		res, err := m.api.decide(string(action), it)
		return decisionMsg{res, err}
	}
}

func (m ConsoleUI) renderModal(title, body string, width int) string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(title))
	content.WriteString("\n\n")
	content.WriteString(body)
	if m.err != nil {
		content.WriteString("\n\n" + errorStyle.Render(m.err.Error()))
	}
	modal := modalStyle.Width(width).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderOnboarding() string {
	weekly, monthly := "  weekly  ", "  monthly  "
	if m.frequency == profile.FrequencyWeekly {
		weekly = selectedStyle.Render(weekly)
	} else {
		monthly = selectedStyle.Render(monthly)
	}

	var body strings.Builder
	body.WriteString("How much allowance do you get?\n\n")
	body.WriteString(m.input.View() + "\n\n")
	body.WriteString(weekly + " " + monthly + "\n\n")
	body.WriteString(promptStyle.Render("Tab to switch how often, Enter to start"))
	if m.loading {
		body.WriteString("\n\n" + m.spinner.View() + " Saving...")
	}
	return m.renderModal("Welcome, NiteCrawler!", body.String(), 50)
}

func (m ConsoleUI) View() string {
	if m.width == 0 || m.height == 0 {
		return "\n  Initializing..."
	}

	switch m.mode {
	case modeLoading:
		if m.err != nil {
			return m.renderModal("Error", "Could not load your profile.\n\nPress Ctrl+C to exit", 50)
		}
		return m.renderModal("Loading", m.spinner.View()+" Fetching your wallet...", 40)
	case modeOnboarding:
		return m.renderOnboarding()
	case modeQuit:
		return m.renderModal("Quit?", "Your progress is saved.\n\n"+promptStyle.Render("Press Y to quit, N to keep playing"), 44)
	case modeConfirmReset:
		return m.renderModal("Start Over?", "This erases your money, discoveries and history.\n\n"+promptStyle.Render("Press Y to reset, N to cancel"), 50)
	}

	logWidth := int(float64(m.width)*0.68) - 4
	metaWidth := m.width - logWidth - 6

	var footer string
	switch {
	case m.mode == modeLabel:
		footer = m.input.View()
	case m.loading:
		footer = m.spinner.View() + " Thinking..."
	case m.err != nil:
		footer = errorStyle.Render("Error: " + m.err.Error())
	case m.current != nil:
		footer = fmt.Sprintf("%s $%d  %s", itemStyle.Render(m.current.DisplayName()), m.current.Price, promptStyle.Render("[b]uy [l]ater [s]kip"))
	case m.status != "":
		footer = promptStyle.Render(m.status)
	default:
		footer = promptStyle.Render("Press n to scan something")
	}

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logView.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 1))),
			footer,
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaView.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}
