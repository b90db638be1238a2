package engine

// Registry keys written by the simulation
const (
	MetricTicks         = "engine.ticks"
	MetricTickMillis    = "engine.tick_ms"
	MetricTickPeakMs    = "engine.tick_peak_ms"
	MetricLive          = "population.live"
	MetricSpawned       = "population.spawned"
	MetricSpawnRejected = "population.spawn_rejected"
	MetricRemoved       = "population.removed"
	MetricPass          = "encounter.pass"
	MetricMerge         = "encounter.merge"
	MetricSplit         = "encounter.split"
	MetricSplitRejected = "encounter.split_rejected"
)
