package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	matchesLogged       int
	questRuns           int
	questsGenerated     int
	questsCompleted     int
	questsFailed        int
	processingDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		processingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesLogged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesLogged++
}

func (m *Mock) IncQuestRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questRuns++
}

func (m *Mock) IncQuestsGenerated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questsGenerated += n
}

func (m *Mock) IncQuestsCompleted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questsCompleted += n
}

func (m *Mock) IncQuestsFailed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questsFailed += n
}

func (m *Mock) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesLogged returns the number of times IncMatchesLogged was called.
func (m *Mock) MatchesLogged() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesLogged
}

// QuestRuns returns the number of times IncQuestRuns was called.
func (m *Mock) QuestRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.questRuns
}

// QuestsGenerated returns the sum passed to IncQuestsGenerated.
func (m *Mock) QuestsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.questsGenerated
}

// QuestsCompleted returns the sum passed to IncQuestsCompleted.
func (m *Mock) QuestsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.questsCompleted
}

// QuestsFailed returns the sum passed to IncQuestsFailed.
func (m *Mock) QuestsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.questsFailed
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// StoreMock is an in-memory MetricsStore for testing.
type StoreMock struct {
	mu     sync.Mutex
	Counts map[string]int
}

// NewStoreMock creates an empty counter store.
func NewStoreMock() *StoreMock {
	return &StoreMock{Counts: make(map[string]int)}
}

func (s *StoreMock) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Counts[key]++
}

func (s *StoreMock) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.Counts))
	for k, v := range s.Counts {
		out[k] = v
	}
	return out, nil
}
