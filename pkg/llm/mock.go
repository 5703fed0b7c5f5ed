package llm

import "context"

// MockChatClient is a configurable mock for testing LLM functionality.
// Set the function field to control behavior in tests.
type MockChatClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns an empty result and nil error.
	CompleteFunc func(ctx context.Context, prompt, systemMessage string, temperature float64, maxTokens int) (*CompletionResult, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Provider is returned by GetProvider. Defaults to ProviderOpenAI.
	Provider Provider

	// Call tracking for verification
	CompleteCalls int
	LastPrompt    string
	LastSystem    string
}

// NewMockChatClient creates a new mock with sensible defaults.
func NewMockChatClient() *MockChatClient {
	return &MockChatClient{
		Model:    "mock-model",
		Provider: ProviderOpenAI,
	}
}

// Complete implements ChatClient.
func (m *MockChatClient) Complete(ctx context.Context, prompt, systemMessage string, temperature float64, maxTokens int) (*CompletionResult, error) {
	m.CompleteCalls++
	m.LastPrompt = prompt
	m.LastSystem = systemMessage
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, systemMessage, temperature, maxTokens)
	}
	return &CompletionResult{}, nil
}

// GetModel implements ChatClient.
func (m *MockChatClient) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// GetProvider implements ChatClient.
func (m *MockChatClient) GetProvider() Provider {
	if m.Provider == "" {
		return ProviderOpenAI
	}
	return m.Provider
}

// Reset clears call tracking.
func (m *MockChatClient) Reset() {
	m.CompleteCalls = 0
	m.LastPrompt = ""
	m.LastSystem = ""
}

// Ensure MockChatClient implements ChatClient at compile time.
var _ ChatClient = (*MockChatClient)(nil)

// MockClientFactory is a configurable mock for testing client creation.
type MockClientFactory struct {
	// ForProviderFunc is called when ForProvider is invoked.
	// If nil, returns MockClient.
	ForProviderFunc func(provider Provider) (ChatClient, error)

	// MockClient is the default client returned if ForProviderFunc is not set.
	MockClient *MockChatClient
}

// NewMockClientFactory creates a new mock client factory.
func NewMockClientFactory() *MockClientFactory {
	return &MockClientFactory{
		MockClient: NewMockChatClient(),
	}
}

// ForProvider implements ClientFactory.
func (f *MockClientFactory) ForProvider(provider Provider) (ChatClient, error) {
	if f.ForProviderFunc != nil {
		return f.ForProviderFunc(provider)
	}
	return f.MockClient, nil
}

// Ensure MockClientFactory implements ClientFactory at compile time.
var _ ClientFactory = (*MockClientFactory)(nil)
