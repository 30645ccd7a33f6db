package snapshot

// Schema DDL for the SQLite export. Timestamps are RFC 3339 text in UTC.
const (
	createLeads = `CREATE TABLE leads (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    phone TEXT,
    address TEXT,
    city TEXT,
    state TEXT,
    zip TEXT,
    lead_source TEXT,
    lead_status TEXT NOT NULL,
    lead_owner TEXT,
    lead_stage TEXT,
    lead_score INTEGER,
    lead_description TEXT,
    lead_notes TEXT,
    lead_type TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createTasks = `CREATE TABLE tasks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    due_date TEXT NOT NULL,
    status TEXT NOT NULL,
    priority TEXT NOT NULL,
    assignee TEXT NOT NULL,
    lead_id TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createNotes = `CREATE TABLE notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT,
    author TEXT,
    lead_id TEXT,
    task_id TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createAppointments = `CREATE TABLE appointments (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    location TEXT,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    status TEXT NOT NULL,
    reminder_time TEXT,
    lead_id TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createVehicles = `CREATE TABLE vehicles (
    id TEXT PRIMARY KEY,
    make TEXT NOT NULL,
    model TEXT,
    year TEXT NOT NULL,
    color TEXT,
    vin TEXT,
    license_plate TEXT,
    mileage INTEGER,
    condition TEXT,
    notes TEXT,
    lead_id TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createRelationships = `CREATE TABLE relationships (
    owner TEXT NOT NULL,
    relation TEXT NOT NULL,
    from_id TEXT NOT NULL,
    to_id TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

// Index DDL for the usual joins.
const (
	idxTasksLead         = `CREATE INDEX idx_tasks_lead ON tasks(lead_id);`
	idxNotesLead         = `CREATE INDEX idx_notes_lead ON notes(lead_id);`
	idxNotesTask         = `CREATE INDEX idx_notes_task ON notes(task_id);`
	idxAppointmentsLead  = `CREATE INDEX idx_appointments_lead ON appointments(lead_id);`
	idxVehiclesLead      = `CREATE INDEX idx_vehicles_lead ON vehicles(lead_id);`
	idxRelationshipsFrom = `CREATE INDEX idx_relationships_from ON relationships(owner, relation, from_id);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createLeads,
	createTasks,
	createNotes,
	createAppointments,
	createVehicles,
	createRelationships,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTasksLead,
	idxNotesLead,
	idxNotesTask,
	idxAppointmentsLead,
	idxVehiclesLead,
	idxRelationshipsFrom,
}
