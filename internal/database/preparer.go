package database

// Preparer provisions and migrates the per-worker test databases
type Preparer interface {
	Prepare(workerCount int, keepData bool) error
}
