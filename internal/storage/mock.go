package storage

import (
	"encoding/json"
	"sync"
)

// Mock is an in-memory implementation of the Store interface for testing.
// Individual methods can be overridden to inject failures.
type Mock struct {
	mu      sync.Mutex
	rmwMu   sync.Mutex
	records map[string]string

	SetFunc       func(key string, v any) error
	GetFunc       func(key string, out any) (bool, error)
	UsageInfoFunc func() (UsageInfo, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{records: make(map[string]string)}
}

func (m *Mock) Get(key string, out any) (bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(key, out)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.records[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(value), out)
}

func (m *Mock) Set(key string, v any) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, v)
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = string(payload)
	return nil
}

func (m *Mock) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *Mock) UsageInfo() (UsageInfo, error) {
	if m.UsageInfoFunc != nil {
		return m.UsageInfoFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, v := range m.records {
		total += int64(len(v))
	}
	return UsageInfo{
		TotalBytes:   total,
		ItemCount:    len(m.records),
		QuotaPercent: float64(total) / float64(defaultQuotaBytes) * 100,
	}, nil
}

func (m *Mock) Exclusive(fn func()) {
	m.rmwMu.Lock()
	defer m.rmwMu.Unlock()
	fn()
}

func (m *Mock) SetQuotaWarnHook(hook QuotaWarnFunc) {}

func (m *Mock) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]string)
	return nil
}
