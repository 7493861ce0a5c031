package contracts

// StageObserver receives progress callbacks as a pipeline run moves
// through its stages. Implementations must not mutate the table.
type StageObserver interface {
	StageStarted(stage string, in *UniverseTable)
	StageCompleted(stage string, out *UniverseTable)
}

// NopObserver ignores all callbacks
type NopObserver struct{}

func (NopObserver) StageStarted(string, *UniverseTable)   {}
func (NopObserver) StageCompleted(string, *UniverseTable) {}
