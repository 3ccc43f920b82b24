package api

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rqa-security/guardhouse/datastore"
)

// fakeStore is an in-memory datastore.Store. Hooks keyed by "Store.Method" run before
// the method and can return an error or panic.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	hooks  map[string]func() error

	personnel   map[int64]datastore.Personnel
	clients     map[int64]datastore.Client
	contracts   map[int64]datastore.Contract
	assignments map[int64]datastore.Assignment
	salaries    map[int64]datastore.SalaryRecord
	calcs       map[int64]datastore.SalaryCalculation
	users       map[string]datastore.User
	// referenced holds the personnel ids whose delete is blocked by dependents.
	referenced map[int64]bool
}

var _ datastore.Store = &fakeStore{}

var (
	fakeDeductions = []datastore.Deduction{
		{DeductionID: 1, DeductionType: "SSS"},
		{DeductionID: 2, DeductionType: "PhilHealth"},
		{DeductionID: 3, DeductionType: "Pag-IBIG"},
	}
	fakeStatuses = []datastore.AssignmentStatus{
		{StatusID: 1, StatusName: "Active"},
		{StatusID: 2, StatusName: "Completed"},
	}
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		hooks:       map[string]func() error{},
		personnel:   map[int64]datastore.Personnel{},
		clients:     map[int64]datastore.Client{},
		contracts:   map[int64]datastore.Contract{},
		assignments: map[int64]datastore.Assignment{},
		salaries:    map[int64]datastore.SalaryRecord{},
		calcs:       map[int64]datastore.SalaryCalculation{},
		users:       map[string]datastore.User{},
		referenced:  map[int64]bool{},
	}
}

// hook runs the hook registered for name. It must be called with mu held.
func (s *fakeStore) hook(name string) error {
	if fn, ok := s.hooks[name]; ok {
		return fn()
	}

	return nil
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) Personnel() datastore.PersonnelStore { return fakePersonnel{s} }
func (s *fakeStore) Clients() datastore.ClientStore { return fakeClients{s} }
func (s *fakeStore) Contracts() datastore.ContractStore { return fakeContracts{s} }
func (s *fakeStore) Assignments() datastore.AssignmentStore { return fakeAssignments{s} }
func (s *fakeStore) Salaries() datastore.SalaryStore { return fakeSalaries{s} }
func (s *fakeStore) Lookups() datastore.LookupStore { return fakeLookups{s} }
func (s *fakeStore) Users() datastore.UserStore { return fakeUsers{s} }
func (s *fakeStore) Dashboard() datastore.DashboardStore { return fakeDashboard{s} }

func (s *fakeStore) WithTransaction(ctx context.Context, fn datastore.TransactionLogic) error {
	return fn(ctx, s)
}

func (s *fakeStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hook("Store.Ping")
}

// sortedDesc returns the values of m, newest id first.
func sortedDesc[T any](m map[int64]T, id func(T) int64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(b), id(a)) })

	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

type fakePersonnel struct{ s *fakeStore }

func (f fakePersonnel) List(_ context.Context, search string) ([]datastore.Personnel, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.hook("Personnel.List"); err != nil {
		return nil, err
	}

	out := []datastore.Personnel{}
	for _, p := range sortedDesc(f.s.personnel, func(p datastore.Personnel) int64 { return p.PersonnelID }) {
		if search == "" || containsFold(p.Name, search) || containsFold(p.Email, search) || containsFold(p.ContactNo, search) {
			out = append(out, p)
		}
	}

	return out, nil
}

func (f fakePersonnel) Get(_ context.Context, id int64) (datastore.Personnel, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	p, ok := f.s.personnel[id]
	if !ok {
		return datastore.Personnel{}, datastore.ErrPersonnelNotFound
	}

	return p, nil
}

func (f fakePersonnel) put(id int64, in datastore.PersonnelInput) datastore.Personnel {
	p := datastore.Personnel{
		PersonnelID:   id,
		Name:          in.Name,
		Age:           in.Age,
		CivilStatusID: in.CivilStatusID,
		GenderID:      in.GenderID,
		ContactNo:     in.ContactNo,
		Email:         in.Email,
		Address:       in.Address,
		AddressLine:   in.Address.Line(),
	}
	f.s.personnel[id] = p

	return p
}

func (f fakePersonnel) Create(_ context.Context, in datastore.PersonnelInput) (datastore.Personnel, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.hook("Personnel.Create"); err != nil {
		return datastore.Personnel{}, err
	}

	return f.put(f.s.id(), in), nil
}

func (f fakePersonnel) Update(_ context.Context, id int64, in datastore.PersonnelInput) (datastore.Personnel, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.personnel[id]; !ok {
		return datastore.Personnel{}, datastore.ErrPersonnelNotFound
	}

	return f.put(id, in), nil
}

func (f fakePersonnel) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.personnel[id]; !ok {
		return datastore.ErrPersonnelNotFound
	}
	if f.s.referenced[id] {
		return datastore.ErrStillReferenced
	}
	delete(f.s.personnel, id)

	return nil
}

type fakeClients struct{ s *fakeStore }

func (f fakeClients) List(_ context.Context, search string) ([]datastore.Client, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	out := []datastore.Client{}
	for _, c := range sortedDesc(f.s.clients, func(c datastore.Client) int64 { return c.ClientID }) {
		if search == "" || containsFold(c.BusinessName, search) || containsFold(c.ContactPerson, search) {
			out = append(out, c)
		}
	}

	return out, nil
}

func (f fakeClients) Get(_ context.Context, id int64) (datastore.Client, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	c, ok := f.s.clients[id]
	if !ok {
		return datastore.Client{}, datastore.ErrClientNotFound
	}

	return c, nil
}

func (f fakeClients) put(id int64, in datastore.ClientInput) datastore.Client {
	c := datastore.Client{
		ClientID:      id,
		BusinessName:  in.BusinessName,
		ContactPerson: in.ContactPerson,
		ContactNo:     in.ContactNo,
		Email:         in.Email,
		ClientTypeID:  in.ClientTypeID,
		Address:       in.Address,
		AddressLine:   in.Address.Line(),
	}
	f.s.clients[id] = c

	return c
}

func (f fakeClients) Create(_ context.Context, in datastore.ClientInput) (datastore.Client, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	return f.put(f.s.id(), in), nil
}

func (f fakeClients) Update(_ context.Context, id int64, in datastore.ClientInput) (datastore.Client, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.clients[id]; !ok {
		return datastore.Client{}, datastore.ErrClientNotFound
	}

	return f.put(id, in), nil
}

func (f fakeClients) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.clients[id]; !ok {
		return datastore.ErrClientNotFound
	}
	delete(f.s.clients, id)

	return nil
}

type fakeContracts struct{ s *fakeStore }

func (f fakeContracts) List(context.Context) ([]datastore.Contract, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	return sortedDesc(f.s.contracts, func(c datastore.Contract) int64 { return c.ContractID }), nil
}

func (f fakeContracts) Get(_ context.Context, id int64) (datastore.Contract, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	c, ok := f.s.contracts[id]
	if !ok {
		return datastore.Contract{}, datastore.ErrContractNotFound
	}

	return c, nil
}

func (f fakeContracts) put(id int64, in datastore.ContractInput) (datastore.Contract, error) {
	company := in.CompanyName
	if in.ClientID.Valid {
		client, ok := f.s.clients[in.ClientID.Int64]
		if !ok {
			return datastore.Contract{}, datastore.ErrInvalidReference
		}
		company = client.BusinessName
	}
	status := in.Status
	if status == "" {
		status = datastore.ContractStatusActive
	}
	c := datastore.Contract{
		ContractID:    id,
		ClientID:      in.ClientID,
		CompanyName:   company,
		ContractType:  in.ContractType,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		ContractValue: in.ContractValue,
		PaymentTerms:  in.PaymentTerms,
		Status:        status,
		Notes:         in.Notes,
	}
	f.s.contracts[id] = c

	return c, nil
}

func (f fakeContracts) Create(_ context.Context, in datastore.ContractInput) (datastore.Contract, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	return f.put(f.s.id(), in)
}

func (f fakeContracts) Update(_ context.Context, id int64, in datastore.ContractInput) (datastore.Contract, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.contracts[id]; !ok {
		return datastore.Contract{}, datastore.ErrContractNotFound
	}

	return f.put(id, in)
}

func (f fakeContracts) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.contracts[id]; !ok {
		return datastore.ErrContractNotFound
	}
	delete(f.s.contracts, id)

	return nil
}

func (f fakeContracts) Extend(_ context.Context, id int64, years int) (datastore.Contract, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	c, ok := f.s.contracts[id]
	if !ok {
		return datastore.Contract{}, datastore.ErrContractNotFound
	}
	c.EndDate = c.EndDate.AddYears(years)
	c.Status = datastore.ContractStatusActive
	f.s.contracts[id] = c

	return c, nil
}

type fakeAssignments struct{ s *fakeStore }

func (f fakeAssignments) List(_ context.Context, search string) ([]datastore.Assignment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	out := []datastore.Assignment{}
	for _, a := range sortedDesc(f.s.assignments, func(a datastore.Assignment) int64 { return a.AssignmentID }) {
		if search == "" || containsFold(a.PersonnelName, search) || containsFold(a.Status, search) {
			out = append(out, a)
		}
	}

	return out, nil
}

func (f fakeAssignments) Get(_ context.Context, id int64) (datastore.Assignment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	a, ok := f.s.assignments[id]
	if !ok {
		return datastore.Assignment{}, datastore.ErrAssignmentNotFound
	}

	return a, nil
}

func (f fakeAssignments) put(id int64, in datastore.AssignmentInput) (datastore.Assignment, error) {
	p, ok := f.s.personnel[in.PersonnelID.Int64]
	if !ok {
		return datastore.Assignment{}, datastore.ErrInvalidReference
	}
	c, ok := f.s.contracts[in.ContractID.Int64]
	if !ok {
		return datastore.Assignment{}, datastore.ErrInvalidReference
	}
	a := datastore.Assignment{
		AssignmentID:  id,
		PersonnelID:   p.PersonnelID,
		PersonnelName: p.Name,
		ContractID:    c.ContractID,
		ContractTitle: c.Title(),
		ClientName:    c.CompanyName,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		StatusID:      in.StatusID,
	}
	for _, st := range fakeStatuses {
		if in.StatusID.Valid && st.StatusID == in.StatusID.Int64 {
			a.Status = st.StatusName
		}
	}
	f.s.assignments[id] = a

	return a, nil
}

func (f fakeAssignments) Create(_ context.Context, in datastore.AssignmentInput) (datastore.Assignment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	return f.put(f.s.id(), in)
}

func (f fakeAssignments) Update(_ context.Context, id int64, in datastore.AssignmentInput) (datastore.Assignment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.assignments[id]; !ok {
		return datastore.Assignment{}, datastore.ErrAssignmentNotFound
	}

	return f.put(id, in)
}

func (f fakeAssignments) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.assignments[id]; !ok {
		return datastore.ErrAssignmentNotFound
	}
	delete(f.s.assignments, id)

	return nil
}

type fakeSalaries struct{ s *fakeStore }

func (f fakeSalaries) ListPersonnelSalaries(context.Context) ([]datastore.PersonnelSalary, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	out := []datastore.PersonnelSalary{}
	for _, p := range sortedDesc(f.s.personnel, func(p datastore.Personnel) int64 { return p.PersonnelID }) {
		row := datastore.PersonnelSalary{PersonnelID: p.PersonnelID, PersonnelName: p.Name, PaymentStatus: datastore.PaymentStatusUnpaid}
		if calc, ok := f.s.calcs[p.PersonnelID]; ok {
			rec := f.s.salaries[p.PersonnelID]
			row.BaseSalary = calc.BaseSalary
			row.BaseBonus = calc.BaseBonus
			row.BaseAllowance = calc.BaseAllowance
			row.TotalDeductions = calc.TotalDeductions
			row.NetSalary = calc.Net
			row.HasSalary = true
			row.PaymentStatus = rec.PaymentStatus
			row.LastPaymentDate = rec.LastPaymentDate
		}
		out = append(out, row)
	}

	return out, nil
}

func (f fakeSalaries) Deductions(context.Context) ([]datastore.Deduction, error) {
	return fakeDeductions, nil
}

func (f fakeSalaries) Salary(_ context.Context, personnelID int64) (datastore.SalaryRecord, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	rec, ok := f.s.salaries[personnelID]
	if !ok {
		return datastore.SalaryRecord{}, datastore.ErrSalaryNotFound
	}

	return rec, nil
}

func (f fakeSalaries) PersonnelDeductions(_ context.Context, personnelID int64) ([]datastore.SalaryDeduction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	out := []datastore.SalaryDeduction{}
	for _, line := range f.s.calcs[personnelID].Deductions {
		d := datastore.SalaryDeduction{DeductionID: line.DeductionID, Amount: line.Amount}
		for _, known := range fakeDeductions {
			if known.DeductionID == line.DeductionID {
				d.DeductionType = known.DeductionType
			}
		}
		out = append(out, d)
	}

	return out, nil
}

func (f fakeSalaries) SaveSalary(_ context.Context, calc datastore.SalaryCalculation) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.hook("Salaries.SaveSalary"); err != nil {
		return 0, err
	}

	if _, ok := f.s.personnel[calc.PersonnelID]; !ok {
		return 0, datastore.ErrPersonnelNotFound
	}
	rec, ok := f.s.salaries[calc.PersonnelID]
	if !ok {
		rec.SalaryID = f.s.id()
	}
	rec.PersonnelID = calc.PersonnelID
	rec.TotalGross = calc.Gross
	rec.TotalDeductions = calc.TotalDeductions
	rec.NetGross = calc.Net
	rec.PaymentStatus = calc.PaymentStatus
	if !calc.PaidOn.IsZero() {
		rec.LastPaymentDate = calc.PaidOn
	}
	f.s.salaries[calc.PersonnelID] = rec
	f.s.calcs[calc.PersonnelID] = calc

	return rec.SalaryID, nil
}

func (f fakeSalaries) SetPaymentStatus(_ context.Context, personnelID int64, status datastore.PaymentStatus, on datastore.Date) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	rec, ok := f.s.salaries[personnelID]
	if !ok {
		return datastore.ErrSalaryNotFound
	}
	rec.PaymentStatus = status
	if status == datastore.PaymentStatusPaid {
		rec.LastPaymentDate = on
	}
	f.s.salaries[personnelID] = rec

	return nil
}

func (f fakeSalaries) DeleteSalary(_ context.Context, personnelID int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	delete(f.s.salaries, personnelID)
	delete(f.s.calcs, personnelID)

	return nil
}

type fakeLookups struct{ s *fakeStore }

func (f fakeLookups) Genders(context.Context) ([]datastore.Gender, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.hook("Lookups.Genders"); err != nil {
		return nil, err
	}

	return []datastore.Gender{{GenderID: 1, GenderName: "Male"}, {GenderID: 2, GenderName: "Female"}}, nil
}

func (f fakeLookups) CivilStatuses(context.Context) ([]datastore.CivilStatus, error) {
	return []datastore.CivilStatus{{CivilStatusID: 1, Title: "Single"}, {CivilStatusID: 2, Title: "Married"}}, nil
}

func (f fakeLookups) ClientTypes(context.Context) ([]datastore.ClientType, error) {
	return []datastore.ClientType{{ClientTypeID: 1, Title: "Corporate"}}, nil
}

func (f fakeLookups) AssignmentStatuses(context.Context) ([]datastore.AssignmentStatus, error) {
	return fakeStatuses, nil
}

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) ByEmail(_ context.Context, email string) (datastore.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	u, ok := f.s.users[email]
	if !ok {
		return datastore.User{}, datastore.ErrUserNotFound
	}

	return u, nil
}

func (f fakeUsers) Create(_ context.Context, email, passwordHash string) (datastore.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.users[email]; ok {
		return datastore.User{}, datastore.ErrConflict
	}
	u := datastore.User{UserID: f.s.id(), Email: email, PasswordHash: passwordHash}
	f.s.users[email] = u

	return u, nil
}

func (f fakeUsers) UpdatePasswordHash(_ context.Context, userID int64, passwordHash string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for email, u := range f.s.users {
		if u.UserID == userID {
			u.PasswordHash = passwordHash
			f.s.users[email] = u
			return nil
		}
	}

	return datastore.ErrUserNotFound
}

func (f fakeUsers) PlaintextPasswords(context.Context) ([]datastore.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []datastore.User
	for _, u := range f.s.users {
		if !u.HasHashedPassword() {
			out = append(out, u)
		}
	}

	return out, nil
}

type fakeDashboard struct{ s *fakeStore }

func (f fakeDashboard) Counts(context.Context) (datastore.DashboardCounts, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.s.hook("Dashboard.Counts"); err != nil {
		return datastore.DashboardCounts{}, err
	}

	active := datastore.Filter(
		sortedDesc(f.s.assignments, func(a datastore.Assignment) int64 { return a.AssignmentID }),
		datastore.AssignmentByActive(),
	)

	return datastore.DashboardCounts{
		Personnel:         len(f.s.personnel),
		Clients:           len(f.s.clients),
		Contracts:         len(f.s.contracts),
		ActiveAssignments: len(active),
	}, nil
}

func (f fakeDashboard) UpcomingAssignments(_ context.Context, from datastore.Date, within time.Duration, limit int) ([]datastore.Assignment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	until := from.Add(within)
	out := []datastore.Assignment{}
	for _, a := range sortedDesc(f.s.assignments, func(a datastore.Assignment) int64 { return a.AssignmentID }) {
		if !a.StartDate.Before(from.Time) && !a.StartDate.After(until) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b datastore.Assignment) int { return a.StartDate.Compare(b.StartDate.Time) })

	return out[:min(limit, len(out))], nil
}

func (f fakeDashboard) RecentAssignments(_ context.Context, limit int) ([]datastore.Assignment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	out := sortedDesc(f.s.assignments, func(a datastore.Assignment) int64 { return a.AssignmentID })

	return out[:min(limit, len(out))], nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
