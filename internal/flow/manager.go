package flow

import "sync"

// Manager выдаёт контроллер сценария для каждого сеанса.
// Контроллер создаётся при первом обращении и живёт, пока жив сеанс.
type Manager struct {
	catalog Catalog
	gateway Gateway
	sink    ApplicationSink

	mu    sync.Mutex
	flows map[string]*Flow
}

// NewManager создаёт менеджер сценариев с указанными коллабораторами.
func NewManager(catalog Catalog, gateway Gateway, sink ApplicationSink) *Manager {
	return &Manager{
		catalog: catalog,
		gateway: gateway,
		sink:    sink,
		flows:   make(map[string]*Flow),
	}
}

// Flow возвращает контроллер сценария для указанного сеанса.
func (m *Manager) Flow(sessionID string) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.flows[sessionID]
	if !ok {
		f = newFlow(m.catalog, m.gateway, m.sink)
		m.flows[sessionID] = f
	}
	return f
}
