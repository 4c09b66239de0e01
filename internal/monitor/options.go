package monitor

type monitorConfig struct {
	MinRunningWorkers     uint
	NonBlockingBufferSize uint
	CheckType             string
	LuaScript             string
	DryRun                bool
}

type monitorOption func(cfg *monitorConfig)

func WithMinRunningWorkers(workers uint) monitorOption {
	return func(cfg *monitorConfig) {
		cfg.MinRunningWorkers = workers
	}
}

func WithNonBlockingBufferSize(bufferSize uint) monitorOption {
	return func(cfg *monitorConfig) {
		cfg.NonBlockingBufferSize = bufferSize
	}
}

func WithProbeType(checkType, luaScript string) monitorOption {
	return func(cfg *monitorConfig) {
		cfg.CheckType = checkType
		cfg.LuaScript = luaScript
	}
}

func WithDryRun(enabled bool) monitorOption {
	return func(cfg *monitorConfig) {
		cfg.DryRun = enabled
	}
}
