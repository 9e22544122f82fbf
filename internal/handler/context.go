package handler

type ContextKey string

var (
	RoleCtxKey       ContextKey = "role"
	SubCtxKey        ContextKey = "sub"
	MyInfoCtx        ContextKey = "myInfo"
	UserInfoCtx      ContextKey = "userInfo"
	ClientCtx        ContextKey = "client"
	JobseekerCtx     ContextKey = "jobseeker"
	PositionCtx      ContextKey = "position"
	AssignmentCtx    ContextKey = "assignment"
	TimesheetCtx     ContextKey = "timesheet"
	BulkTimesheetCtx ContextKey = "bulkTimesheet"
)
