package constants

// Permission resources. Checks are exact (resource, action) matches,
// no wildcards.
const (
	ResCourse       = "course"
	ResLab          = "lab"
	ResSimulation   = "simulation"
	ResAnnouncement = "announcement"
	ResCurriculum   = "curriculum"
	ResProgress     = "progress"
	ResUser         = "user"
	ResFile         = "file"
	ResActivityLog  = "activity_log"
)

// Permission actions.
const (
	ActRead   = "read"
	ActCreate = "create"
	ActUpdate = "update"
	ActDelete = "delete"
	ActManage = "manage"
)

// Course access levels for CanAccessCourse.
const (
	AccessRead  = "read"
	AccessWrite = "write"
	AccessAdmin = "admin"
)
