package tasks

// DefineTasks registers all available tasks
func DefineTasks() {
	RegisterHandler(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)
	RegisterHandler(DueReminderTask.TaskID(), DueReminderTask.HandleExecution)
	RegisterHandler(GeneratePracticeDuesTask.TaskID(), GeneratePracticeDuesTask.HandleExecution)
}
