// Package jobs provides scheduled background tasks.
//
// OverdueDeliveryJob runs every minute and flags deliveries whose estimated
// delivery time has passed without the delivery reaching a terminal status.
// Jobs are managed through JobManager, which starts and stops them together;
// a failed start stops any job already running.
package jobs
