package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/dreamhome-service/internal/api/http/handlers"
	"github.com/spec-kit/dreamhome-service/internal/auth"
	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/observability"
	"github.com/spec-kit/dreamhome-service/internal/service"
	"github.com/spec-kit/dreamhome-service/internal/staffcache"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

type stubStaff struct {
	cache     map[string]staffcache.Entry
	hired     []service.HireInput
	updates   []domain.StaffUpdate
	panicList bool
}

func (s *stubStaff) List(context.Context) ([]domain.Staff, error) {
	if s.panicList {
		panic("boom")
	}
	return []domain.Staff{{
		StaffNo: "SG37", FirstName: "Ann", LastName: "Beech", Sex: "F", BranchNo: "B003",
		DOB: time.Date(1960, 11, 10, 0, 0, 0, 0, time.UTC), Salary: 12000,
	}}, nil
}

func (s *stubStaff) Hire(_ context.Context, in service.HireInput) (*domain.Staff, error) {
	s.hired = append(s.hired, in)
	if in.BranchNo == "B999" {
		return nil, apperrors.NewValidationError("the branch does not exist", map[string]any{"branch_no": in.BranchNo})
	}
	if in.StaffNo == "SG37" {
		return nil, apperrors.NewConflict("staff already exists", nil)
	}
	return &domain.Staff{StaffNo: in.StaffNo, BranchNo: in.BranchNo, Salary: in.Salary}, nil
}

func (s *stubStaff) Update(_ context.Context, update domain.StaffUpdate) (staffcache.Entry, error) {
	s.updates = append(s.updates, update)
	if update.StaffNo == "" {
		return staffcache.Entry{}, apperrors.NewValidationError("staff number is required", nil)
	}
	entry, ok := s.cache[update.StaffNo]
	if !ok {
		return staffcache.Entry{}, apperrors.NewNotFound("staff", nil)
	}
	if update.Salary != nil {
		entry.Salary = *update.Salary
	}
	return entry, nil
}

func (s *stubStaff) Summary(staffNo string) (staffcache.Entry, error) {
	entry, ok := s.cache[staffNo]
	if !ok {
		return staffcache.Entry{}, apperrors.NewNotFound("staff", nil)
	}
	return entry, nil
}

func (s *stubStaff) RebuildCache(context.Context) (int, error) { return len(s.cache), nil }

func (s *stubStaff) ExportWorkbook(context.Context) (*bytes.Buffer, error) {
	return bytes.NewBufferString("PK-xlsx"), nil
}

type stubBranch struct{}

func (stubBranch) List(context.Context) ([]domain.Branch, error) {
	return []domain.Branch{{BranchNo: "B003", Street: "163 Main St", City: "Glasgow", PostCode: "G11 9QX"}}, nil
}

func (stubBranch) Get(_ context.Context, branchNo string) (*domain.Branch, error) {
	if branchNo != "B003" {
		return nil, apperrors.NewNotFound("branch", nil)
	}
	return &domain.Branch{BranchNo: "B003", Street: "163 Main St", City: "Glasgow", PostCode: "G11 9QX"}, nil
}

func (stubBranch) Create(context.Context, *domain.Branch) error { return nil }

func (stubBranch) Update(_ context.Context, update domain.BranchUpdate) (*domain.Branch, error) {
	return &domain.Branch{BranchNo: update.BranchNo, Street: update.Street, City: "Glasgow"}, nil
}

type stubClient struct{}

func (stubClient) List(context.Context) ([]domain.Client, error) { return nil, nil }
func (stubClient) Get(_ context.Context, clientNo string) (*domain.Client, error) {
	return &domain.Client{ClientNo: clientNo}, nil
}
func (stubClient) Create(context.Context, *domain.Client) error       { return nil }
func (stubClient) Update(context.Context, domain.ClientUpdate) error { return nil }

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestApp(t *testing.T, staff *stubStaff, guards []fiber.Handler) *fiber.App {
	t.Helper()
	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler(handlers.HealthDependencies{
			ServiceName: "dreamhome-service",
			Postgres:    stubPinger{},
			Metrics:     metrics,
		}),
		Staff:       handlers.NewStaffHandler(staff),
		Branch:      handlers.NewBranchHandler(stubBranch{}),
		Client:      handlers.NewClientHandler(stubClient{}),
		WriteGuards: guards,
	})
	return app
}

func newStubStaff() *stubStaff {
	return &stubStaff{cache: map[string]staffcache.Entry{
		"SG37": {Salary: 12000, Telephone: "0141-848-3345", Email: "ann@dreamhome.co.uk"},
	}}
}

func do(t *testing.T, app *fiber.App, method, path, body string, header ...string) (*nethttp.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestStaffList_UsesListNaming(t *testing.T) {
	app := newTestApp(t, newStubStaff(), nil)

	resp, body := do(t, app, nethttp.MethodGet, "/staff", "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1)
	require.Equal(t, "SG37", rows[0]["staff_id"])
	require.Equal(t, "F", rows[0]["gender"])
	require.Equal(t, "1960-11-10", rows[0]["dob"])
	require.NotEmpty(t, resp.Header.Get(observability.RequestIDHeader))
}

func TestStaffHire(t *testing.T) {
	staff := newStubStaff()
	app := newTestApp(t, staff, nil)

	resp, body := do(t, app, nethttp.MethodPost, "/staff",
		`{"staffno":"SL21","fname":"John","lname":"White","position":"Manager","sex":"M","dob":"1945-10-01","salary":30000,"branchno":"B005","telephone":"1","mobile":"2","email":"j@x.com"}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	require.Contains(t, string(body), `"staffno":"SL21"`)
	require.Equal(t, "White", staff.hired[0].LastName)

	resp, body = do(t, app, nethttp.MethodPost, "/staff", `{"staffno":"SL22","branchno":"B999"}`)
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), `"code":"VALIDATION_FAILED"`)

	resp, _ = do(t, app, nethttp.MethodPost, "/staff", `{"staffno":"SG37","branchno":"B003"}`)
	require.Equal(t, nethttp.StatusConflict, resp.StatusCode)

	resp, _ = do(t, app, nethttp.MethodPost, "/staff", `{not json`)
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestStaffUpdate(t *testing.T) {
	staff := newStubStaff()
	app := newTestApp(t, staff, nil)

	resp, body := do(t, app, nethttp.MethodPut, "/staff", `{"staffNo":"SG37","salary":13500,"telephone":""}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "SG37", entries[0]["staffNo"])
	require.EqualValues(t, 13500, entries[0]["salary"])
	require.Nil(t, staff.updates[0].Telephone)

	resp, _ = do(t, app, nethttp.MethodPut, "/staff", `{"staffNo":"SX99","salary":1}`)
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, nethttp.MethodPut, "/staff", `{"salary":1}`)
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestStaffWrites_AcceptFormStringSalaries(t *testing.T) {
	staff := newStubStaff()
	app := newTestApp(t, staff, nil)

	resp, body := do(t, app, nethttp.MethodPut, "/staff",
		`{"staffNo":"SG37","position":"","salary":"13500","telephone":"","email":""}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode, string(body))
	require.EqualValues(t, 13500, *staff.updates[0].Salary)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(body, &entries))
	require.EqualValues(t, 13500, entries[0]["salary"])

	resp, body = do(t, app, nethttp.MethodPut, "/staff", `{"staffNo":"SG37","salary":"","email":"a@b.c"}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode, string(body))
	require.Nil(t, staff.updates[1].Salary)

	resp, body = do(t, app, nethttp.MethodPost, "/staff",
		`{"staffno":"SL21","fname":"John","lname":"White","position":"Manager","sex":"M","dob":"1945-10-01","salary":"30000","branchno":"B005","telephone":"1","mobile":"2","email":"j@x.com"}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode, string(body))
	require.Equal(t, 30000.0, staff.hired[0].Salary)
	require.Contains(t, string(body), `"salary":30000`)
}

func TestStaffWrites_RejectNonNumericSalary(t *testing.T) {
	staff := newStubStaff()
	app := newTestApp(t, staff, nil)

	resp, body := do(t, app, nethttp.MethodPut, "/staff", `{"staffNo":"SG37","salary":"a lot"}`)
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), `"code":"VALIDATION_FAILED"`)
	require.Contains(t, string(body), `"value":"a lot"`)
	require.Empty(t, staff.updates)

	resp, _ = do(t, app, nethttp.MethodPost, "/staff", `{"staffno":"SL21","branchno":"B005","salary":"thirty"}`)
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	require.Empty(t, staff.hired)
}

func TestStaffSummaryRebuildAndExport(t *testing.T) {
	app := newTestApp(t, newStubStaff(), nil)

	resp, body := do(t, app, nethttp.MethodGet, "/staff/SG37/summary", "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"telephone":"0141-848-3345"`)

	resp, _ = do(t, app, nethttp.MethodGet, "/staff/SX99/summary", "")
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp, body = do(t, app, nethttp.MethodPost, "/staff/cache/rebuild", "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"entries":1}`, string(body))

	resp, body = do(t, app, nethttp.MethodGet, "/staff/export", "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "staff.xlsx")
	require.Equal(t, "PK-xlsx", string(body))
}

func TestBranchLookup(t *testing.T) {
	app := newTestApp(t, newStubStaff(), nil)

	resp, body := do(t, app, nethttp.MethodGet, "/branch/B003", "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"exists":true,"branch":{"branch_no":"B003","street":"163 Main St","city":"Glasgow","postal_code":"G11 9QX"}}`, string(body))

	resp, body = do(t, app, nethttp.MethodGet, "/branch/B404", "")
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	require.JSONEq(t, `{"exists":false,"message":"Branch not found"}`, string(body))
}

func TestClientCreate(t *testing.T) {
	app := newTestApp(t, newStubStaff(), nil)

	resp, body := do(t, app, nethttp.MethodPost, "/client", `{"clientNo":"CR56","fname":"Aline"}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	require.Contains(t, string(body), `"client_id":"CR56"`)

	resp, body = do(t, app, nethttp.MethodPost, "/client", `{"clientNo":"CR57","maxrent":"425"}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	require.Contains(t, string(body), `"max_rent":425`)

	resp, _ = do(t, app, nethttp.MethodPut, "/client", `{"clientno":"CR57","maxrent":"cheap"}`)
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestBranchUpdate_AnswersWithText(t *testing.T) {
	app := newTestApp(t, newStubStaff(), nil)

	resp, body := do(t, app, nethttp.MethodPut, "/branch", `{"branchNo":"B003","street":"16 Argyll St"}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Equal(t, "Branch updated successfully", string(body))
	require.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMETextPlain)
}

func TestUnknownRouteAndPanicUseErrorEnvelope(t *testing.T) {
	staff := newStubStaff()
	staff.panicList = true
	app := newTestApp(t, staff, nil)

	resp, body := do(t, app, nethttp.MethodGet, "/nowhere", "")
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	require.Contains(t, string(body), `"code":"NOT_FOUND"`)

	resp, body = do(t, app, nethttp.MethodGet, "/staff", "")
	require.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
	require.Contains(t, string(body), `"code":"INTERNAL_ERROR"`)
}

func TestWriteGuardsProtectMutationsOnly(t *testing.T) {
	tm := auth.NewTokenManager("secret", 5)
	app := newTestApp(t, newStubStaff(), auth.WriteGuards(true, auth.NewAuthMiddleware(tm)))

	resp, _ := do(t, app, nethttp.MethodGet, "/staff", "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, nethttp.MethodPut, "/staff", `{"staffNo":"SG37","salary":1}`)
	require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	tok, err := tm.GenerateToken(domain.Operator{Email: "admin@dreamhome.co.uk", Role: domain.RoleAdmin})
	require.NoError(t, err)
	resp, _ = do(t, app, nethttp.MethodPut, "/staff", `{"staffNo":"SG37","salary":1}`, "Authorization", "Bearer "+tok.Value)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t, newStubStaff(), nil)

	resp, _ := do(t, app, nethttp.MethodGet, "/health/ready", "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, body := do(t, app, nethttp.MethodGet, "/health/metrics", "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "total_request_count")

	resp, body = do(t, app, nethttp.MethodGet, "/", "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.Equal(t, "Welcome to the main page!", string(body))
}
