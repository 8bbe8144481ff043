package testutil

import (
	"context"
	"sync"

	"github.com/JPM1118/assetconv/internal/convert"
	"github.com/JPM1118/assetconv/internal/grouper"
)

// MockConverter implements convert.Converter for testing.
type MockConverter struct {
	mu             sync.Mutex
	Result         convert.Result
	ConvertErr     error
	Print          string
	FingerprintErr error
	ConvertCalls   int
}

var _ convert.Converter = (*MockConverter)(nil)

func (m *MockConverter) Convert(_ context.Context) (convert.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConvertCalls++
	if m.ConvertErr != nil {
		return convert.Result{}, m.ConvertErr
	}
	res := m.Result
	if res.Assets == nil {
		res.Assets = grouper.NewAssets()
	}
	return res, nil
}

func (m *MockConverter) Fingerprint() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Print, m.FingerprintErr
}

// SetPrint updates the fingerprint in a thread-safe manner.
func (m *MockConverter) SetPrint(fp string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Print = fp
}

// SetConvertErr updates the conversion error in a thread-safe manner.
func (m *MockConverter) SetConvertErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConvertErr = err
}

// GetConvertCalls returns the number of Convert calls in a thread-safe manner.
func (m *MockConverter) GetConvertCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ConvertCalls
}
