package api

// presets maps a preset name to its ordered list of atomic steps. Presets
// never reference other presets, so expansion flattens exactly one level.
var presets = map[string][]string{
	PresetBuild: {
		StepSetup,
		StepClean,
		StepTestSyntax,
		StepMerge,
		StepImportDependencies,
		StepBuildVSSolution,
		StepUpdateMetadata,
	},
	PresetTest: {
		StepVSUnitTest,
		StepPSUnitTest,
	},
	PresetRelease: {
		StepUpdateVersion,
	},
}

// Expand substitutes preset names in place, preserving order. Names that are
// not presets pass through unchanged; whether they name a registered step is
// decided at execution time, not here.
func Expand(names []string) []string {
	expanded := make([]string, 0, len(names))
	for _, name := range names {
		if steps, ok := presets[name]; ok {
			expanded = append(expanded, steps...)
			continue
		}
		expanded = append(expanded, name)
	}
	return expanded
}
