package postgres

// Lookup tables come first so the foreign keys of the later tables resolve.
// Salary data belongs to its personnel and is removed with it; assignments are not,
// so deleting a deployed personnel fails with a foreign key violation.
const (
	sCHEMA_ADDRESS = `
		CREATE TABLE IF NOT EXISTS address (
			address_id   SERIAL PRIMARY KEY,
			street       VARCHAR(255),
			barangay     VARCHAR(255),
			city         VARCHAR(255),
			province     VARCHAR(255),
			postal_code  VARCHAR(20)
		);`

	sCHEMA_GENDER = `
		CREATE TABLE IF NOT EXISTS gender (
			gender_id    SERIAL PRIMARY KEY,
			gender_name  VARCHAR(50) NOT NULL UNIQUE
		);`

	sCHEMA_CIVILSTATUS = `
		CREATE TABLE IF NOT EXISTS civilstatus (
			civilstatus_id  SERIAL PRIMARY KEY,
			title           VARCHAR(50) NOT NULL UNIQUE
		);`

	sCHEMA_CLIENTTYPE = `
		CREATE TABLE IF NOT EXISTS clienttype (
			clienttype_id  SERIAL PRIMARY KEY,
			title          VARCHAR(100) NOT NULL UNIQUE
		);`

	sCHEMA_ASSIGNMENTSTATUS = `
		CREATE TABLE IF NOT EXISTS assignmentstatus (
			status_id    SERIAL PRIMARY KEY,
			status_name  VARCHAR(50) NOT NULL UNIQUE
		);`

	sCHEMA_DEDUCTIONS = `
		CREATE TABLE IF NOT EXISTS deductions (
			deduction_id    SERIAL PRIMARY KEY,
			deduction_type  VARCHAR(100) NOT NULL UNIQUE
		);`

	sCHEMA_USERS = `
		CREATE TABLE IF NOT EXISTS users (
			user_id        SERIAL PRIMARY KEY,
			email          VARCHAR(255) NOT NULL UNIQUE,
			password_hash  VARCHAR(255) NOT NULL
		);`

	sCHEMA_PERSONNEL = `
		CREATE TABLE IF NOT EXISTS personnel (
			personnel_id    SERIAL PRIMARY KEY,
			personnel_name  VARCHAR(255) NOT NULL,
			personnel_age   INTEGER,
			civilstatus_id  INTEGER REFERENCES civilstatus (civilstatus_id),
			gender_id       INTEGER REFERENCES gender (gender_id),
			address_id      INTEGER REFERENCES address (address_id),
			contact_no      VARCHAR(50),
			email           VARCHAR(255)
		);`

	sCHEMA_CLIENT = `
		CREATE TABLE IF NOT EXISTS client (
			client_id       SERIAL PRIMARY KEY,
			business_name   VARCHAR(255) NOT NULL,
			contact_person  VARCHAR(255),
			contact_no      VARCHAR(50),
			email           VARCHAR(255),
			clienttype_id   INTEGER REFERENCES clienttype (clienttype_id),
			address_id      INTEGER REFERENCES address (address_id)
		);`

	sCHEMA_CONTRACT = `
		CREATE TABLE IF NOT EXISTS contract (
			contract_id     SERIAL PRIMARY KEY,
			client_id       INTEGER REFERENCES client (client_id),
			company_name    VARCHAR(255) NOT NULL,
			contract_type   VARCHAR(100) NOT NULL,
			start_date      DATE NOT NULL,
			end_date        DATE NOT NULL,
			contract_value  NUMERIC(14, 2) NOT NULL DEFAULT 0,
			payment_terms   VARCHAR(50),
			status          VARCHAR(20) NOT NULL DEFAULT 'active',
			notes           TEXT,

			CHECK (end_date >= start_date)
		);`

	sCHEMA_ASSIGNMENT = `
		CREATE TABLE IF NOT EXISTS assignment (
			assignment_id  SERIAL PRIMARY KEY,
			personnel_id   INTEGER NOT NULL REFERENCES personnel (personnel_id),
			contract_id    INTEGER NOT NULL REFERENCES contract (contract_id),
			start_date     DATE NOT NULL,
			end_date       DATE,
			status_id      INTEGER REFERENCES assignmentstatus (status_id),

			CHECK (end_date IS NULL OR end_date >= start_date)
		);`

	sCHEMA_PERSONNELSALARY = `
		CREATE TABLE IF NOT EXISTS personnelsalary (
			personnel_id    INTEGER PRIMARY KEY REFERENCES personnel (personnel_id) ON DELETE CASCADE,
			base_salary     NUMERIC(12, 2) NOT NULL DEFAULT 0,
			base_bonus      NUMERIC(12, 2) NOT NULL DEFAULT 0,
			base_allowance  NUMERIC(12, 2) NOT NULL DEFAULT 0
		);`

	sCHEMA_SALARY = `
		CREATE TABLE IF NOT EXISTS salary (
			salary_id          SERIAL PRIMARY KEY,
			personnel_id       INTEGER NOT NULL UNIQUE REFERENCES personnel (personnel_id) ON DELETE CASCADE,
			total_gross        NUMERIC(12, 2) NOT NULL DEFAULT 0,
			total_deductions   NUMERIC(12, 2) NOT NULL DEFAULT 0,
			net_gross          NUMERIC(12, 2) NOT NULL DEFAULT 0,
			payment_status     VARCHAR(10) NOT NULL DEFAULT 'unpaid',
			last_payment_date  DATE
		);`

	sCHEMA_PERSONNEL_DEDUCTIONS = `
		CREATE TABLE IF NOT EXISTS personnel_deductions (
			deduct_id            SERIAL UNIQUE,
			personnel_id         INTEGER NOT NULL REFERENCES personnel (personnel_id) ON DELETE CASCADE,
			deduction_id         INTEGER NOT NULL REFERENCES deductions (deduction_id),
			contribution_amount  NUMERIC(12, 2) NOT NULL DEFAULT 0,

			CONSTRAINT personnel_deductions_pkey PRIMARY KEY (personnel_id, deduction_id)
		);`

	sCHEMA_SALARYDEDUCTIONS = `
		CREATE TABLE IF NOT EXISTS salarydeductions (
			salary_id  INTEGER NOT NULL REFERENCES salary (salary_id) ON DELETE CASCADE,
			deduct_id  INTEGER NOT NULL REFERENCES personnel_deductions (deduct_id) ON DELETE CASCADE,
			amount     NUMERIC(12, 2) NOT NULL,

			PRIMARY KEY (salary_id, deduct_id)
		);`
)

// schema lists the DDL statements in dependency order.
var schema = []struct {
	table string
	ddl   string
}{
	{"address", sCHEMA_ADDRESS},
	{"gender", sCHEMA_GENDER},
	{"civilstatus", sCHEMA_CIVILSTATUS},
	{"clienttype", sCHEMA_CLIENTTYPE},
	{"assignmentstatus", sCHEMA_ASSIGNMENTSTATUS},
	{"deductions", sCHEMA_DEDUCTIONS},
	{"users", sCHEMA_USERS},
	{"personnel", sCHEMA_PERSONNEL},
	{"client", sCHEMA_CLIENT},
	{"contract", sCHEMA_CONTRACT},
	{"assignment", sCHEMA_ASSIGNMENT},
	{"personnelsalary", sCHEMA_PERSONNELSALARY},
	{"salary", sCHEMA_SALARY},
	{"personnel_deductions", sCHEMA_PERSONNEL_DEDUCTIONS},
	{"salarydeductions", sCHEMA_SALARYDEDUCTIONS},
}

// Default rows of the lookup tables.
var (
	seedGenders            = []string{"Male", "Female"}
	seedCivilStatuses      = []string{"Single", "Married", "Widowed", "Separated"}
	seedClientTypes        = []string{"Corporate", "Commercial", "Residential", "Government", "Industrial"}
	seedAssignmentStatuses = []string{"Active", "Pending", "Completed", "Cancelled"}
	seedDeductions         = []string{"SSS", "PhilHealth", "Pag-IBIG", "Withholding Tax", "Cash Advance"}
)
