package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/upliftai/backend/core"
	"github.com/upliftai/backend/core/account"
	"github.com/upliftai/backend/core/chat"
	"github.com/upliftai/backend/core/plan"
	"github.com/upliftai/backend/core/reminder"
	"github.com/upliftai/backend/core/staff"
	aisvc "github.com/upliftai/backend/services/ai"
	inmemdb "github.com/upliftai/backend/storage/database/inmem"
)

var errMissingJWT = httpErr{Error: "missing or malformed jwt"}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type testEnv struct {
	app  *Server
	conf *core.Config

	acctSvc  *account.Service
	remRepo  reminder.Repository
	chatRepo chat.Repository
	planRepo plan.Repository
}

func setup(t *testing.T, gen core.TextGenerator) *testEnv {
	t.Helper()

	conf := &core.Config{
		TestMode:       true,
		AppName:        "UpliftAI",
		SecretKey:      "test-secret",
		BaseURL:        "http://localhost:8000",
		AllowedOrigins: []string{"*"},
		Server:         core.ServerConfig{JWTExpirationDelta: 7 * 24 * time.Hour},
	}

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)

	if gen == nil {
		gen = aisvc.NewTextGeneratorMock("", nil)
	}

	db := inmemdb.Open()
	logger := nopLogger{}
	env := &testEnv{
		conf:     conf,
		acctSvc:  account.NewService(inmemdb.NewAccountRepository(db)),
		remRepo:  inmemdb.NewReminderRepository(db),
		chatRepo: inmemdb.NewChatRepository(db),
		planRepo: inmemdb.NewPlanRepository(db),
	}

	env.app = NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logger,
		AccountSvc:  env.acctSvc,
		ChatSvc:     chat.NewService(env.chatRepo, gen, logger),
		ReminderSvc: reminder.NewService(env.remRepo),
		PlanSvc:     plan.NewService(env.planRepo, gen, logger),
		StaffSvc:    staff.NewService(inmemdb.NewStaffRepository(db)),
		Validate:    validate,
		Translator:  translator,
	})
	return env
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// createAccount registers directly through the service, bypassing HTTP.
func (env *testEnv) createAccount(t *testing.T, email, pwd, role string) account.Account {
	t.Helper()
	acct, err := env.acctSvc.Register(context.TODO(), account.NewAccount{Email: email, Password: pwd, Role: role})
	if err != nil {
		t.Fatalf("createAccount(%s): %v", email, err)
	}
	return acct
}

func (env *testEnv) getToken(t *testing.T, acct account.Account) string {
	t.Helper()
	token, err := GenerateToken(env.conf, GetAccountClaims(env.conf, acct))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func unmarchallObj(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), obj); err != nil {
		t.Fatalf("unmarchallObj(): %v; body: %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
