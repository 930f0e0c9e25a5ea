package adminkit_test

import (
	"context"
	"io"
	"mime/multipart"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/mokuren/go-adminkit"
	"github.com/stretchr/testify/mock"
)

var errNotFound = goerrors.New("record not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("NOT_FOUND")

// MockContext mocks the router.Context
type MockContext struct {
	mock.Mock
	NextCalled bool
}

func (m *MockContext) Next() error {
	m.NextCalled = true
	return nil
}

func (m *MockContext) Context() context.Context {
	args := m.Called()
	c, ok := args.Get(0).(context.Context)
	if !ok {
		panic("arg needs to be context.Context")
	}
	return c
}

func (m *MockContext) SetContext(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockContext) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Method() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Body() []byte {
	args := m.Called()
	return args.Get(0).([]byte)
}

func (m *MockContext) Status(code int) router.Context {
	m.Called(code)
	return m
}

func (m *MockContext) SendString(s string) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockContext) Send(b []byte) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockContext) JSON(code int, val any) error {
	args := m.Called(code, val)
	return args.Error(0)
}

func (m *MockContext) NoContent(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) Render(name string, bind any, layout ...string) error {
	if len(layout) > 0 {
		args := m.Called(name, bind, layout[0])
		return args.Error(0)
	}
	args := m.Called(name, bind)
	return args.Error(0)
}

func (m *MockContext) Redirect(path string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(path, status)
		return args.Error(0)
	}
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	if len(status) > 0 {
		args := m.Called(name, data, status[0])
		return args.Error(0)
	}
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockContext) RedirectBack(fallback string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(fallback, status)
		return args.Error(0)
	}
	args := m.Called(fallback)
	return args.Error(0)
}

func (m *MockContext) SetHeader(key, val string) router.Context {
	m.Called(key, val)
	return m
}

func (m *MockContext) Header(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Get(key string, defaultValue any) any {
	args := m.Called(key, defaultValue)
	return args.Get(0)
}

func (m *MockContext) GetBool(key string, defaultValue bool) bool {
	args := m.Called(key, defaultValue)
	return args.Bool(0)
}

func (m *MockContext) GetInt(key string, def int) int {
	args := m.Called(key, def)
	return args.Int(0)
}

func (m *MockContext) Set(key string, val any) {
	m.Called(key, val)
}

func (m *MockContext) Bind(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindJSON(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindXML(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindQuery(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) CookieParser(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) Cookie(cookie *router.Cookie) {
	m.Called(cookie)
}

func (m *MockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) ParamsInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Query(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) QueryValues(key string) []string {
	args := m.Called(key)
	return args.Get(0).([]string)
}

func (m *MockContext) QueryInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Queries() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

func (m *MockContext) GetString(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.Called(key, value[0])
		return nil
	}
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockContext) OriginalURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) OnNext(callback func() error) {
	m.Called(callback)
}

func (m *MockContext) Referer() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) LocalsMerge(key any, value map[string]any) map[string]any {
	args := m.Called(key, value)
	return args.Get(0).(map[string]any)
}

func (m *MockContext) FormFile(key string) (*multipart.FileHeader, error) {
	args := m.Called(key)
	header, _ := args.Get(0).(*multipart.FileHeader)
	return header, args.Error(1)
}

func (m *MockContext) FormValue(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) IP() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) SendStatus(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) SendStream(r io.Reader) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockContext) RouteName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) RouteParams() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

// testIdentity implements adminkit.Identity
type testIdentity struct {
	id    string
	email string
}

func (t testIdentity) ID() string    { return t.id }
func (t testIdentity) Email() string { return t.email }

// stubSessionResolver returns a fixed session or error.
type stubSessionResolver struct {
	session *adminkit.SessionObject
	err     error
}

func (s stubSessionResolver) SessionFromRequest(router.Context) (*adminkit.SessionObject, error) {
	return s.session, s.err
}

// fakeAdminStore is an in-memory admin registry.
type fakeAdminStore struct {
	records   map[uuid.UUID]*adminkit.Admin
	saveErr   error
	deleteErr error
	deleted   []uuid.UUID
}

func newFakeAdminStore(records ...*adminkit.Admin) *fakeAdminStore {
	s := &fakeAdminStore{records: map[uuid.UUID]*adminkit.Admin{}}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *fakeAdminStore) GetByID(_ context.Context, id uuid.UUID) (*adminkit.Admin, error) {
	if record, ok := s.records[id]; ok {
		return record, nil
	}
	return nil, errNotFound
}

func (s *fakeAdminStore) GetByEmail(_ context.Context, email string) (*adminkit.Admin, error) {
	for _, record := range s.records {
		if record.Email == email {
			return record, nil
		}
	}
	return nil, errNotFound
}

func (s *fakeAdminStore) Save(_ context.Context, record *adminkit.Admin) (*adminkit.Admin, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.records[record.ID] = record
	return record, nil
}

func (s *fakeAdminStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	delete(s.records, id)
	return nil
}

// fakeProfileStore is an in-memory user-profile registry.
type fakeProfileStore struct {
	records   map[uuid.UUID]*adminkit.UserProfile
	saveErr   error
	deleteErr error
	deleted   []uuid.UUID
}

func newFakeProfileStore(records ...*adminkit.UserProfile) *fakeProfileStore {
	s := &fakeProfileStore{records: map[uuid.UUID]*adminkit.UserProfile{}}
	for _, r := range records {
		s.records[r.ID] = r
	}
	return s
}

func (s *fakeProfileStore) GetByID(_ context.Context, id uuid.UUID) (*adminkit.UserProfile, error) {
	if record, ok := s.records[id]; ok {
		return record, nil
	}
	return nil, errNotFound
}

func (s *fakeProfileStore) GetByEmail(_ context.Context, email string) (*adminkit.UserProfile, error) {
	for _, record := range s.records {
		if record.Email == email {
			return record, nil
		}
	}
	return nil, errNotFound
}

func (s *fakeProfileStore) Save(_ context.Context, record *adminkit.UserProfile) (*adminkit.UserProfile, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.records[record.ID] = record
	return record, nil
}

func (s *fakeProfileStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	delete(s.records, id)
	return nil
}

// fakeIdentityService scripts the identity-service responses.
type fakeIdentityService struct {
	user        adminkit.Identity
	userErr     error
	invited     adminkit.Identity
	inviteErr   error
	inviteCalls int
	pages       [][]adminkit.Identity
	listErr     error
	listCalls   int
}

func (f *fakeIdentityService) UserFromToken(context.Context, string) (adminkit.Identity, error) {
	return f.user, f.userErr
}

func (f *fakeIdentityService) InviteUserByEmail(context.Context, string) (adminkit.Identity, error) {
	f.inviteCalls++
	if f.inviteErr != nil {
		return nil, f.inviteErr
	}
	return f.invited, nil
}

func (f *fakeIdentityService) ListUsers(_ context.Context, page, _ int) ([]adminkit.Identity, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if page < len(f.pages) {
		return f.pages[page], nil
	}
	return nil, nil
}
