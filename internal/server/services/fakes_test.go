package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/dbx"
	"github.com/reminisce-care/reminisce/internal/server/models"
	accountsrepo "github.com/reminisce-care/reminisce/internal/server/repositories/accounts"
	emergencyrepo "github.com/reminisce-care/reminisce/internal/server/repositories/emergencylogs"
	medicationsrepo "github.com/reminisce-care/reminisce/internal/server/repositories/medications"
	memoriesrepo "github.com/reminisce-care/reminisce/internal/server/repositories/memories"
	routinesrepo "github.com/reminisce-care/reminisce/internal/server/repositories/routines"
	sessionsrepo "github.com/reminisce-care/reminisce/internal/server/repositories/sessions"
)

// --- in-memory fakes shared by the service tests ---

type fakeAccountsRepo struct {
	nextID   int64
	accounts map[int64]*models.Account
	err      error
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{accounts: map[int64]*models.Account{}}
}

func (f *fakeAccountsRepo) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.accounts {
		if a.Username == account.Username {
			return nil, common.ErrorConflict
		}
	}
	f.nextID++
	account.ID = f.nextID
	account.CreatedAt = time.Now()
	f.accounts[account.ID] = account
	return account, nil
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *fakeAccountsRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAccountsRepo) PatientsOf(ctx context.Context, caretakerID int64) ([]*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	var patients []*models.Account
	for _, a := range f.accounts {
		if a.Role == models.RolePatient && a.CaretakerID != nil && *a.CaretakerID == caretakerID {
			patients = append(patients, a)
		}
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].Username < patients[j].Username })
	return patients, nil
}

type fakeSessionsRepo struct {
	sessions map[string]*models.Session
	err      error
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{sessions: map[string]*models.Session{}}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, accountID int64, token string, expires time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.sessions[token] = &models.Session{Token: token, AccountID: accountID, Expires: expires}
	return nil
}

func (f *fakeSessionsRepo) Get(ctx context.Context, token string) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, token string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionsRepo) DeleteExpired(ctx context.Context) error { return f.err }

type fakeMemoriesRepo struct {
	nextID   int64
	memories map[int64]*models.Memory
	answers  map[int64]map[string]*models.MemoryAnswer
	rotated  []int64
	err      error
}

func newFakeMemoriesRepo() *fakeMemoriesRepo {
	return &fakeMemoriesRepo{
		memories: map[int64]*models.Memory{},
		answers:  map[int64]map[string]*models.MemoryAnswer{},
	}
}

func (f *fakeMemoriesRepo) Create(ctx context.Context, memory *models.Memory) (*models.Memory, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	memory.ID = f.nextID
	memory.CreatedAt = time.Now()
	memory.RotatedOn = memory.CreatedAt
	f.memories[memory.ID] = memory
	return memory, nil
}

func (f *fakeMemoriesRepo) Get(ctx context.Context, id int64) (*models.Memory, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.memories[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (f *fakeMemoriesRepo) ListByPatient(ctx context.Context, patientID int64) ([]*models.Memory, error) {
	if f.err != nil {
		return nil, f.err
	}
	var list []*models.Memory
	for _, m := range f.memories {
		if m.PatientID == patientID {
			list = append(list, m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (f *fakeMemoriesRepo) RotateStale(ctx context.Context, patientID int64) error {
	if f.err != nil {
		return f.err
	}
	f.rotated = append(f.rotated, patientID)
	return nil
}

func (f *fakeMemoriesRepo) UpsertAnswer(ctx context.Context, memoryID int64, answer string) (*models.MemoryAnswer, error) {
	if f.err != nil {
		return nil, f.err
	}
	day := time.Now().Format("2006-01-02")
	if f.answers[memoryID] == nil {
		f.answers[memoryID] = map[string]*models.MemoryAnswer{}
	}
	existing, ok := f.answers[memoryID][day]
	if ok {
		existing.Answer = answer
		return existing, nil
	}
	a := &models.MemoryAnswer{
		ID:         int64(len(f.answers[memoryID]) + 1),
		MemoryID:   memoryID,
		AnsweredOn: time.Now(),
		Answer:     answer,
		CreatedAt:  time.Now(),
	}
	f.answers[memoryID][day] = a
	return a, nil
}

func (f *fakeMemoriesRepo) ListAnswers(ctx context.Context, memoryID int64) ([]*models.MemoryAnswer, error) {
	if f.err != nil {
		return nil, f.err
	}
	var list []*models.MemoryAnswer
	for _, a := range f.answers[memoryID] {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].AnsweredOn.After(list[j].AnsweredOn) })
	return list, nil
}

type fakeRoutinesRepo struct {
	nextID   int64
	routines map[int64]*models.Routine
	err      error
}

func newFakeRoutinesRepo() *fakeRoutinesRepo {
	return &fakeRoutinesRepo{routines: map[int64]*models.Routine{}}
}

func (f *fakeRoutinesRepo) Create(ctx context.Context, routine *models.Routine) (*models.Routine, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	routine.ID = f.nextID
	routine.CreatedAt = time.Now()
	f.routines[routine.ID] = routine
	return routine, nil
}

func (f *fakeRoutinesRepo) Get(ctx context.Context, id int64) (*models.Routine, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.routines[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r, nil
}

func (f *fakeRoutinesRepo) ListByPatient(ctx context.Context, patientID int64) ([]*models.Routine, error) {
	if f.err != nil {
		return nil, f.err
	}
	var list []*models.Routine
	for _, r := range f.routines {
		if r.PatientID == patientID {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (f *fakeRoutinesRepo) Toggle(ctx context.Context, id int64) (*models.Routine, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.routines[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	r.IsCompleted = !r.IsCompleted
	return r, nil
}

type fakeMedicationsRepo struct {
	nextID      int64
	medications map[int64]*models.Medication
	err         error
}

func newFakeMedicationsRepo() *fakeMedicationsRepo {
	return &fakeMedicationsRepo{medications: map[int64]*models.Medication{}}
}

func (f *fakeMedicationsRepo) Create(ctx context.Context, medication *models.Medication) (*models.Medication, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	medication.ID = f.nextID
	medication.CreatedAt = time.Now()
	f.medications[medication.ID] = medication
	return medication, nil
}

func (f *fakeMedicationsRepo) Get(ctx context.Context, id int64) (*models.Medication, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.medications[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (f *fakeMedicationsRepo) ListByPatient(ctx context.Context, patientID int64) ([]*models.Medication, error) {
	if f.err != nil {
		return nil, f.err
	}
	var list []*models.Medication
	for _, m := range f.medications {
		if m.PatientID == patientID {
			list = append(list, m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (f *fakeMedicationsRepo) Toggle(ctx context.Context, id int64) (*models.Medication, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.medications[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	m.Taken = !m.Taken
	return m, nil
}

type fakeEmergencyRepo struct {
	nextID int64
	logs   map[int64]*models.EmergencyLog
	err    error
}

func newFakeEmergencyRepo() *fakeEmergencyRepo {
	return &fakeEmergencyRepo{logs: map[int64]*models.EmergencyLog{}}
}

func (f *fakeEmergencyRepo) Create(ctx context.Context, patientID int64, status string) (*models.EmergencyLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	log := &models.EmergencyLog{
		ID:        f.nextID,
		PatientID: patientID,
		Status:    status,
		CreatedAt: time.Now(),
	}
	f.logs[log.ID] = log
	return log, nil
}

func (f *fakeEmergencyRepo) Get(ctx context.Context, id int64) (*models.EmergencyLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	l, ok := f.logs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return l, nil
}

func (f *fakeEmergencyRepo) ListByPatient(ctx context.Context, patientID int64) ([]*models.EmergencyLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	var list []*models.EmergencyLog
	for _, l := range f.logs {
		if l.PatientID == patientID {
			list = append(list, l)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (f *fakeEmergencyRepo) Resolve(ctx context.Context, id int64) (*models.EmergencyLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	l, ok := f.logs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	l.Resolved = true
	return l, nil
}

type fakeRepoManager struct {
	accounts    *fakeAccountsRepo
	sessions    *fakeSessionsRepo
	memories    *fakeMemoriesRepo
	routines    *fakeRoutinesRepo
	medications *fakeMedicationsRepo
	emergency   *fakeEmergencyRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		accounts:    newFakeAccountsRepo(),
		sessions:    newFakeSessionsRepo(),
		memories:    newFakeMemoriesRepo(),
		routines:    newFakeRoutinesRepo(),
		medications: newFakeMedicationsRepo(),
		emergency:   newFakeEmergencyRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository { return m.accounts }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.sessions }
func (m *fakeRepoManager) Memories(db dbx.DBTX) memoriesrepo.Repository { return m.memories }
func (m *fakeRepoManager) Routines(db dbx.DBTX) routinesrepo.Repository { return m.routines }
func (m *fakeRepoManager) Medications(db dbx.DBTX) medicationsrepo.Repository {
	return m.medications
}
func (m *fakeRepoManager) EmergencyLogs(db dbx.DBTX) emergencyrepo.Repository { return m.emergency }

// fakeUploader satisfies imageUploader without touching the object store.
type fakeUploader struct {
	uploaded []string
	err      error
}

func (f *fakeUploader) UploadImage(ctx context.Context, imageData string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, imageData)
	return "http://media.local/images/test.jpg", nil
}

// helpers for building accounts

func caretakerAccount(id int64, username string) *models.Account {
	return &models.Account{ID: id, Username: username, Role: models.RoleCaretaker}
}

func patientAccount(id int64, username string, caretakerID int64) *models.Account {
	return &models.Account{ID: id, Username: username, Role: models.RolePatient, CaretakerID: &caretakerID}
}
