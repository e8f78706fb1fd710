package optimize

import "github.com/induplan/pathopt/core/model"

// VarIndex maps (facility, technology, year) triples onto a dense column
// range. Columns of one facility-year pair are contiguous, which keeps
// decision extraction a linear scan.
type VarIndex struct {
	facilities int
	techs      int
	horizon    model.Horizon
}

// NewVarIndex lays out columns for the given dimensions.
func NewVarIndex(facilities, techs int, h model.Horizon) VarIndex {
	return VarIndex{facilities: facilities, techs: techs, horizon: h}
}

// Cols returns the total number of columns.
func (ix VarIndex) Cols() int { return ix.facilities * ix.techs * ix.horizon.Years() }

// Col returns the column of x(facility, tech, year).
func (ix VarIndex) Col(facility int, tech model.Technology, year int) int {
	return (facility*ix.horizon.Years()+ix.horizon.Offset(year))*ix.techs + int(tech)
}

// Triple returns the (facility, tech, year) addressed by col.
func (ix VarIndex) Triple(col int) (facility int, tech model.Technology, year int) {
	tech = model.Technology(col % ix.techs)
	rest := col / ix.techs
	year = ix.horizon.Start + rest%ix.horizon.Years()
	facility = rest / ix.horizon.Years()
	return facility, tech, year
}
