package ui

import (
	stdcontext "context"
	"os"
	"strings"
	"time"

	"admin-dash/auth"
	"admin-dash/config"
	"admin-dash/constants"
	"admin-dash/context"
	"admin-dash/data"
	"admin-dash/data/store"
	"admin-dash/i18n"
	"admin-dash/ui/form"
	"admin-dash/ui/section"
	"admin-dash/ui/toast"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

const loginFormId int64 = -1

type ErrMsg error

type initMsg struct {
	Config config.Config
}

type loginResultMsg struct {
	token string
	err   error
}

var (
	quitKeys = key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	)
	forceQuitKeys = key.NewBinding(
		key.WithKeys("ctrl+c"),
	)
	nextSectionKeys = key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next resource"),
	)
	prevSectionKeys = key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous resource"),
	)
	logoutKeys = key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "sign out"),
	)
)

type Options struct {
	ConfigPath string
	// LogFile is set when logging was already redirected by a flag.
	LogFile string
	// Store replaces the API when set; the session is then signed in.
	Store *store.Store
}

type Model struct {
	quitting    bool
	err         error
	configPath  string
	logFile     string
	ctx         *context.ProgramContext
	sections    []section.Section
	currSection int
	tasks       map[string]context.Task
	taskSpinner spinner.Model
	toasts      toast.Model
	login       *form.Model
}

func NewModel(opts Options) Model {
	taskSpinner := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		configPath:  opts.ConfigPath,
		logFile:     opts.LogFile,
		tasks:       map[string]context.Task{},
		taskSpinner: taskSpinner,
		toasts:      toast.NewModel(),
	}
	m.ctx = &context.ProgramContext{
		ConfigPath: opts.ConfigPath,
		Store:      opts.Store,
		Styles:     context.InitStyles(termenv.ColorProfile()),
		StartTask: func(task context.Task) tea.Cmd {
			log.Debug("Starting task", "id", task.Id)
			task.StartTime = time.Now()
			m.tasks[task.Id] = task
			return m.taskSpinner.Tick
		},
	}

	return m
}

func (m *Model) initScreen() tea.Msg {
	showError := func(err error) {
		styles := log.DefaultStyles()
		styles.Key = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)
		styles.Separator = lipgloss.NewStyle()

		logger := log.New(os.Stderr)
		logger.SetStyles(styles)
		logger.SetTimeFormat(time.RFC3339)
		logger.SetReportTimestamp(true)
		logger.SetPrefix("Reading config file")
		logger.SetReportCaller(true)

		logger.
			Fatal(
				"failed parsing config file",
				"location",
				m.configPath,
				"err",
				err,
			)
	}

	if m.ctx.Store != nil {
		return initMsg{Config: config.DemoConfig()}
	}

	cfg, err := config.ParseConfig(m.ctx.ConfigPath)
	if err != nil {
		showError(err)
		return initMsg{Config: cfg}
	}

	return initMsg{Config: cfg}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initScreen, tea.EnterAltScreen)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {

	case initMsg:
		cmds = append(cmds, m.applyConfig(msg.Config))
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.ctx.ScreenWidth = msg.Width
		m.ctx.ScreenHeight = msg.Height
		m.resizeSections()
		if m.login != nil {
			m.login.SetWidth(min(msg.Width-10, 50))
		}
		return m, nil

	case constants.TaskFinishedMsg:
		task, ok := m.tasks[msg.TaskId]
		if ok {
			log.Debug("Task finished", "id", task.Id)
			if msg.Err != nil {
				log.Error("Task finished with error", "id", task.Id, "err", msg.Err)
				task.State = context.TaskError
				task.Error = msg.Err
			} else {
				task.State = context.TaskFinished
			}
			now := time.Now()
			task.FinishedTime = &now
			m.tasks[msg.TaskId] = task
			cmd = tea.Tick(constants.TaskClearTimeout, func(t time.Time) tea.Msg {
				return constants.ClearTaskMsg{TaskId: msg.TaskId}
			})
			cmds = append(cmds, cmd)

			if msg.Msg != nil {
				cmds = append(cmds, m.updateSection(msg.SectionId, msg.SectionType, msg.Msg))
			}
		}
		cmds = append(cmds, m.checkSession())
		return m, tea.Batch(cmds...)

	case constants.ClearTaskMsg:
		delete(m.tasks, msg.TaskId)
		return m, nil

	case spinner.TickMsg:
		if msg.ID == m.taskSpinner.ID() {
			if m.hasRunningTasks() {
				m.taskSpinner, cmd = m.taskSpinner.Update(msg)
			}
			return m, cmd
		}

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case form.SubmitMsg:
		if msg.FormId == loginFormId {
			return m, m.signIn(msg.Values)
		}

	case form.CancelMsg:
		if msg.FormId == loginFormId {
			return m, nil
		}

	case loginResultMsg:
		return m, m.applyLogin(msg)

	case toast.Msg:
		m.toasts, cmd = m.toasts.Update(msg)
		return m, cmd

	case ErrMsg:
		m.err = msg
		return m, nil
	}

	m.toasts, cmd = m.toasts.Update(msg)
	cmds = append(cmds, cmd, m.broadcast(msg))
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, forceQuitKeys) {
		m.quitting = true
		return tea.Quit
	}
	if m.ctx.Config == nil {
		return nil
	}

	if m.login != nil {
		f, cmd := m.login.Update(msg)
		m.login = &f
		return cmd
	}

	if cmd := m.checkSession(); cmd != nil {
		return cmd
	}

	current := m.getCurrSection()
	if current != nil && current.IsCapturingInput() {
		return m.updateCurrentSection(msg)
	}

	switch {
	case key.Matches(msg, quitKeys):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, nextSectionKeys):
		m.switchSection(1)
		return nil

	case key.Matches(msg, prevSectionKeys):
		m.switchSection(-1)
		return nil

	case key.Matches(msg, logoutKeys):
		if m.ctx.Store != nil {
			return nil
		}
		m.ctx.Session.Logout()
		m.unmountSections()
		m.openLogin()
		return toast.Notifier{}.Success(m.ctx.T("auth.signed_out"), "")
	}

	return m.updateCurrentSection(msg)
}

func (m *Model) applyConfig(cfg config.Config) tea.Cmd {
	m.ctx.Config = &cfg
	if cfg.LogFile != "" && m.logFile == "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			log.Error("Failed opening log file", "path", cfg.LogFile, "err", err)
		} else {
			log.SetOutput(f)
			m.logFile = cfg.LogFile
		}
	}

	translator, err := i18n.New(cfg.Language)
	if err != nil {
		log.Error("Failed loading translations", "err", err)
		translator, _ = i18n.New(i18n.DefaultLanguage)
	}
	m.ctx.Translator = translator

	if m.ctx.Store != nil {
		m.ctx.Session = auth.NewDemoSession()
	} else {
		session := auth.NewSession()
		m.ctx.Session = session
		m.ctx.Client = data.NewClient(cfg.ApiUrl, session.Token, cfg.RequestTimeout)
		if err := session.Restore(cfg.Token); err != nil {
			log.Info("No usable token, signing in", "err", err)
		}
	}

	if !m.ctx.Session.IsAuthenticated() {
		m.openLogin()
		return nil
	}
	return m.mountSections()
}

func (m *Model) openLogin() {
	f := form.New(loginFormId, m.ctx.T("auth.title"), []form.Field{
		{Key: "username", Label: m.ctx.T("auth.username"), Rules: "required"},
		{Key: "password", Label: m.ctx.T("auth.password"), Rules: "required", Secret: true},
	}, m.ctx)
	if m.ctx.ScreenWidth > 0 {
		f.SetWidth(min(m.ctx.ScreenWidth-10, 50))
	}
	m.login = &f
}

func (m *Model) signIn(values data.Payload) tea.Cmd {
	client, timeout := m.ctx.Client, m.ctx.Config.RequestTimeout
	username, _ := values["username"].(string)
	password, _ := values["password"].(string)

	log.Info("Signing in", "username", username)
	return func() tea.Msg {
		ctx, cancel := stdcontext.WithTimeout(stdcontext.Background(), timeout)
		defer cancel()

		token, err := auth.Login(ctx, client, username, password)
		return loginResultMsg{token: token, err: err}
	}
}

func (m *Model) applyLogin(msg loginResultMsg) tea.Cmd {
	if m.login == nil {
		return nil
	}

	err := msg.err
	if err == nil {
		err = m.ctx.Session.Restore(msg.token)
	}
	if err != nil {
		log.Error("Sign in failed", "err", err)
		m.login.SetError(err)
		return toast.Notifier{}.Error(m.ctx.T("auth.failed"), err.Error())
	}

	m.login = nil
	return tea.Batch(
		m.mountSections(),
		toast.Notifier{}.Success(m.ctx.T("auth.signed_in_as", m.ctx.Session.Name()), ""),
	)
}

// checkSession signs out when the token expired while the dashboard was open.
func (m *Model) checkSession() tea.Cmd {
	if m.login != nil || m.ctx.Session == nil || len(m.sections) == 0 {
		return nil
	}
	if m.ctx.Session.IsAuthenticated() {
		return nil
	}

	log.Info("Session expired")
	m.ctx.Session.Logout()
	m.unmountSections()
	m.openLogin()
	return toast.Notifier{}.Error(m.ctx.T("auth.session_ended"), "")
}

func (m *Model) mountSections() tea.Cmd {
	m.sections = FetchAllSections(m.ctx)
	m.currSection = 0
	m.resizeSections()

	cmds := make([]tea.Cmd, 0, len(m.sections))
	for _, s := range m.sections {
		cmds = append(cmds, s.Init())
	}
	return tea.Batch(cmds...)
}

func (m *Model) unmountSections() {
	for _, s := range m.sections {
		s.Unmount()
	}
	m.sections = nil
	m.currSection = 0
}

func (m *Model) resizeSections() {
	// tabs, status bar and toasts
	height := max(m.ctx.ScreenHeight-6, 0)
	for _, s := range m.sections {
		s.SetDimensions(m.ctx.ScreenWidth, height)
	}
}

func (m *Model) switchSection(delta int) {
	if len(m.sections) == 0 {
		return
	}
	m.currSection = (m.currSection + delta + len(m.sections)) % len(m.sections)
}

func (m *Model) hasRunningTasks() bool {
	for _, t := range m.tasks {
		if t.State == context.TaskStart {
			return true
		}
	}
	return false
}

func (m Model) View() string {
	if m.ctx.Config == nil {
		return "Reading config...\n"
	}

	s := strings.Builder{}
	s.WriteString(m.ctx.Styles.Title.Render(m.ctx.T("app.title")))
	s.WriteString("\n\n")

	if m.login != nil {
		s.WriteString(m.login.View())
		s.WriteString("\n")
		s.WriteString(m.ctx.Styles.Faint.Render(m.ctx.T("auth.hint")))
	} else {
		s.WriteString(m.renderTabs())
		s.WriteString("\n\n")

		currSection := m.getCurrSection()
		mainContent := ""
		if currSection != nil {
			mainContent = lipgloss.JoinHorizontal(
				lipgloss.Top,
				currSection.View(),
			)
		} else {
			mainContent = m.ctx.T("app.no_sections")
		}
		s.WriteString(mainContent)
		s.WriteString("\n")
		s.WriteString(m.renderStatusBar())
	}

	if toasts := m.toasts.View(); toasts != "" {
		s.WriteString("\n")
		pos := lipgloss.Right
		if m.ctx.IsRTL() {
			pos = lipgloss.Left
		}
		s.WriteString(lipgloss.PlaceHorizontal(m.ctx.ScreenWidth, pos, toasts))
	}
	s.WriteString("\n")

	return s.String()
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(m.sections))
	for i, sec := range m.sections {
		style := m.ctx.Styles.InactiveTab
		if i == m.currSection {
			style = m.ctx.Styles.ActiveTab
		}
		tabs = append(tabs, style.Render(sec.Title()))
	}
	if m.ctx.IsRTL() {
		for i, j := 0, len(tabs)-1; i < j; i, j = i+1, j-1 {
			tabs[i], tabs[j] = tabs[j], tabs[i]
		}
		return lipgloss.PlaceHorizontal(m.ctx.ScreenWidth, lipgloss.Right, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderStatusBar() string {
	parts := []string{}
	if task, ok := m.latestTask(); ok {
		switch task.State {
		case context.TaskStart:
			parts = append(parts, m.taskSpinner.View()+" "+task.StartText)
		case context.TaskError:
			parts = append(parts, m.ctx.Styles.Error.Render("✗ "+task.Error.Error()))
		default:
			text := "✓ " + task.FinishedText
			if task.FinishedTime != nil {
				text += " · " + humanize.RelTime(task.StartTime, *task.FinishedTime, "", "")
			}
			parts = append(parts, text)
		}
	}
	if name := m.ctx.Session.Name(); name != "" {
		parts = append(parts, m.ctx.T("auth.signed_in_as", name))
	}
	return m.ctx.Styles.StatusBar.Render(strings.Join(parts, "  │  "))
}

func (m *Model) latestTask() (context.Task, bool) {
	var latest context.Task
	found := false
	for _, t := range m.tasks {
		if !found || t.StartTime.After(latest.StartTime) {
			latest = t
			found = true
		}
	}
	return latest, found
}

func (m *Model) getCurrSection() section.Section {
	if len(m.sections) == 0 || m.currSection >= len(m.sections) {
		return nil
	}
	return m.sections[m.currSection]
}

func (m *Model) updateCurrentSection(msg tea.Msg) (cmd tea.Cmd) {
	section := m.getCurrSection()
	if section == nil {
		return nil
	}
	return m.updateSection(section.GetId(), section.GetType(), msg)
}

func (m *Model) updateSection(id int, sType string, msg tea.Msg) (cmd tea.Cmd) {
	for i, s := range m.sections {
		if s.GetId() != id || s.GetType() != sType {
			continue
		}
		var updatedSection section.Section
		updatedSection, cmd = s.Update(msg)
		m.sections[i] = updatedSection
		return cmd
	}
	return nil
}

// broadcast hands msg to every section. View-model messages carry the id of
// the view-model they belong to and the other sections ignore them.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.sections))
	for i, s := range m.sections {
		updated, cmd := s.Update(msg)
		m.sections[i] = updated
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) Err() error {
	return m.err
}
