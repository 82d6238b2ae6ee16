package domain

// ComponentBuild is one buildable package within a module build.
type ComponentBuild struct {
	ID          ComponentID    `json:"id"`
	ModuleID    ModuleID       `json:"module_id"`
	Package     string         `json:"package"`
	SCMURL      string         `json:"scm_url,omitzero"`
	Batch       int            `json:"batch"`
	Weight      float64        `json:"weight,omitzero"`
	State       ComponentState `json:"state"`
	StateReason string         `json:"state_reason,omitzero"`
	TaskID      int64          `json:"task_id,omitzero"`
	NVR         string         `json:"nvr,omitzero"`

	// ReusedComponentID points at the prior component build this one was satisfied from.
	ReusedComponentID ComponentID `json:"reused_component_id,omitzero"`
}

// IsWaiting reports whether the component still has to be submitted.
func (c *ComponentBuild) IsWaiting() bool {
	return c.State == ComponentWait || c.State == ""
}

// IsBuilding reports whether the component is in flight.
func (c *ComponentBuild) IsBuilding() bool {
	return c.State == ComponentBuilding
}

// IsReused reports whether the component was satisfied by a prior build.
func (c *ComponentBuild) IsReused() bool {
	return !c.ReusedComponentID.IsZero()
}

// HasTask reports whether the builder assigned a task handle.
func (c *ComponentBuild) HasTask() bool {
	return c.TaskID != 0
}

// Apply copies a builder result onto the component.
func (c *ComponentBuild) Apply(res BuildResult) {
	c.TaskID = res.TaskID
	c.State = res.State
	c.StateReason = res.Reason
	c.NVR = res.NVR
}
