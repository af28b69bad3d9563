package driver

const (
	createChatLogsTable = `
		CREATE TABLE IF NOT EXISTS chat_logs (
			id TEXT PRIMARY KEY,
			ts TEXT NOT NULL,
			user_message TEXT NOT NULL,
			corrected_message TEXT,
			response_type TEXT NOT NULL,
			kb_source TEXT,
			bot_response TEXT
		)
	`

	createChatLogsTsIndex = `CREATE INDEX IF NOT EXISTS chat_logs_ts_idx ON chat_logs (ts)`

	createRemindersTable = `
		CREATE TABLE IF NOT EXISTS reminders (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			user_hint TEXT,
			next_date TEXT NOT NULL,
			note TEXT,
			channel TEXT,
			contact TEXT
		)
	`

	sqliteInsertChatLog = `
		INSERT INTO chat_logs (id, ts, user_message, corrected_message, response_type, kb_source, bot_response)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	sqliteInsertReminder = `
		INSERT INTO reminders (id, created_at, user_hint, next_date, note, channel, contact)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	sqliteRecentChatLogs = `
		SELECT ts, user_message, corrected_message, response_type, kb_source, bot_response
		FROM chat_logs ORDER BY ts DESC LIMIT ?
	`

	postgresInsertChatLog = `
		INSERT INTO chat_logs (id, ts, user_message, corrected_message, response_type, kb_source, bot_response)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	postgresInsertReminder = `
		INSERT INTO reminders (id, created_at, user_hint, next_date, note, channel, contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	postgresRecentChatLogs = `
		SELECT ts, user_message, corrected_message, response_type, kb_source, bot_response
		FROM chat_logs ORDER BY ts DESC LIMIT $1
	`
)

var schema = []string{
	createChatLogsTable,
	createChatLogsTsIndex,
	createRemindersTable,
}
