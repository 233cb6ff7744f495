// Package orchestrator drives complete generation runs. It resumes from the
// output directory's recorded history, plans one wave per sophistication
// level step, executes waves through the scheduler and appends successful
// iterations back into history, stopping when the execution mode's goal is
// met or the shared context ledger crosses its utilisation threshold.
package orchestrator
