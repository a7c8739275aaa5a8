package entities

// Collection names in the document store.
const (
	CollectionVisits      = "visits"
	CollectionActions     = "actions"
	CollectionMedications = "medications"
	CollectionHealthLogs  = "healthLogs"
	CollectionReminders   = "reminders"
	CollectionCareTasks   = "careTasks"
)

// SoftDeletableCollections lists every collection whose records carry a
// deletedAt field and are subject to retention purging.
func SoftDeletableCollections() []string {
	return []string{
		CollectionVisits,
		CollectionActions,
		CollectionMedications,
		CollectionHealthLogs,
		CollectionReminders,
		CollectionCareTasks,
	}
}
