package utils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"capacita/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "Manual%20del%20empleado.pdf", EncodeURIComponent("Manual del empleado.pdf"))
	assert.Equal(t, "https%3A%2F%2Fx%2Fa.docx%3Fv%3D1", EncodeURIComponent("https://x/a.docx?v=1"))
	assert.Equal(t, "Inducci%C3%B3n", EncodeURIComponent("Inducción"))
}

type sweeperMock struct {
	mock.Mock
}

func (m *sweeperMock) Sweep(ctx context.Context) (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func TestRunCleanupSweep(t *testing.T) {
	s := &sweeperMock{}
	s.On("Sweep").Return(3, nil).Once()
	s.On("Sweep").Return(0, errors.New("storage down")).Once()

	RunCleanupSweep(context.Background(), s, zap.NewNop())
	RunCleanupSweep(context.Background(), s, zap.NewNop())

	s.AssertExpectations(t)
}

func TestInitializeCleanupScheduler(t *testing.T) {
	c, err := InitializeCleanupScheduler(context.Background(), "", &sweeperMock{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = InitializeCleanupScheduler(context.Background(), "not a schedule", &sweeperMock{}, zap.NewNop())
	assert.Error(t, err)

	c, err = InitializeCleanupScheduler(context.Background(), "@every 1h", &sweeperMock{}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)
	c.Stop()
}

func TestMailerSendWelcome(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewMailer(&config.Config{SendgridAPIKey: "SG.key", EmailSender: "no-reply@example.com", EmailSenderName: "Capacitaciones"}, zap.NewNop())
	m.host = srv.URL

	require.NoError(t, m.SendWelcome(context.Background(), "ana@example.com", "Ana", "admin"))

	assert.Equal(t, "Bearer SG.key", auth)
	from := got["from"].(map[string]any)
	assert.Equal(t, "no-reply@example.com", from["email"])
	p := got["personalizations"].([]any)[0].(map[string]any)
	assert.Equal(t, "ana@example.com", p["to"].([]any)[0].(map[string]any)["email"])
	content := got["content"].([]any)[0].(map[string]any)
	assert.Contains(t, content["value"], "Administrador")
}

func TestMailerReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	m := NewMailer(&config.Config{EmailSender: "no-reply@example.com"}, zap.NewNop())
	m.host = srv.URL

	err := m.SendWelcome(context.Background(), "ana@example.com", "", "viewer")
	assert.ErrorContains(t, err, "401")
}
