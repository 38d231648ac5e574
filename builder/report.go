package builder

// Report describes what Finish assembled: stage contents, reset systems,
// unique provenance, and tracked storages. All listings are deterministic;
// type-keyed sections are sorted by type name.
type Report struct {
	Workload      string
	Stages        []StageReport
	TrackedResets []string
	Resets        []string
	Uniques       []UniqueReport
	Tracked       []TrackedReport
}

// StageReport lists one stage's systems in execution order.
type StageReport struct {
	Name    string
	Systems []string
}

// UniqueReport records who provided and who required one unique type.
type UniqueReport struct {
	Type       string
	ProvidedBy []string
	RequiredBy []RequirementReport
}

// TrackedReport records every request to track one storage type.
type TrackedReport struct {
	Type     string
	Requests []RequirementReport
}

// RequirementReport is one (requester path, reason) pair.
type RequirementReport struct {
	Path   string
	Reason string
}

func (b *Builder) buildReport(name string) *Report {
	r := &Report{Workload: name}

	for _, stageName := range b.stages.Stages() {
		sr := StageReport{Name: stageName}
		for _, sys := range b.stages.Systems(stageName) {
			sr.Systems = append(sr.Systems, sys.Name)
		}
		r.Stages = append(r.Stages, sr)
	}
	for _, sys := range b.storages.resets {
		r.TrackedResets = append(r.TrackedResets, sys.Name)
	}
	for _, sys := range b.resets {
		r.Resets = append(r.Resets, sys.Name)
	}

	for _, key := range b.tracker.sortedProvidedKeys() {
		ur := UniqueReport{
			Type:       b.reg.Name(key),
			ProvidedBy: pathStrings(b.tracker.providedBy[key]),
		}
		for _, req := range b.tracker.requiredBy[key] {
			ur.RequiredBy = append(ur.RequiredBy, RequirementReport{
				Path:   req.Path.String(),
				Reason: req.Reason,
			})
		}
		r.Uniques = append(r.Uniques, ur)
	}

	for _, key := range b.storages.sortedKeys() {
		tr := TrackedReport{Type: b.reg.Name(key)}
		for _, req := range b.storages.requests[key] {
			tr.Requests = append(tr.Requests, RequirementReport{
				Path:   req.Path.String(),
				Reason: req.Reason,
			})
		}
		r.Tracked = append(r.Tracked, tr)
	}

	return r
}
