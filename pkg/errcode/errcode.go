package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	ConfigSyntaxError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBQueryTablesError
	DBDropTablesError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaExistsError
	SchemaCollationError

	// Store errors
	StoreUpsertError
	StoreLookupError
	StoreSyncError
	StoreClearError
	StoreUnknownEntityError

	// Source API errors
	SourceFetchError
	SourceMalformedURLError
	SourceDecodeError
	SourceCacheError

	// Progress errors
	ProgressConnectionError
	ProgressReadError
	ProgressWriteError

	// Import errors
	ImportCountError
	ImportPageError
	ImportStageError
	ImportUnknownStageError
	ImportCancelledError

	// Parallel errors
	ParallelLaunchError
	ParallelWorkersFailedError
	ParallelExecutableError

	// Orchestrator errors
	OrchestrateStageFailedError
)
