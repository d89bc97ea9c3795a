package aggregates

// WriteTxOwnership defines who owns write transaction boundaries.
type WriteTxOwnership string

const (
	// WriteTxOwnedByAggregate means write methods open and commit their own transaction.
	WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"
)

// ReadPolicy defines how aggregate contracts expose reads.
type ReadPolicy string

const (
	// ReadPolicyInvariantScoped allows only reads needed for invariant decisions in write flows.
	ReadPolicyInvariantScoped ReadPolicy = "invariant_scoped_reads"
	// ReadPolicyTableRepoQueries keeps list and export queries on table repos.
	ReadPolicyTableRepoQueries ReadPolicy = "table_repo_queries"
)

// Contract describes aggregate-level policy expectations.
type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	ReadPolicy       ReadPolicy
	Notes            string
}

// Aggregate is implemented by services that own a consistency boundary.
type Aggregate interface {
	Contract() Contract
}

func (c Contract) RequiresAggregateOwnedTx() bool {
	return c.WriteTxOwnership == WriteTxOwnedByAggregate
}

var (
	DocumentAggregateContract = Contract{
		Name:             "Study.DocumentAggregate",
		WriteTxOwnership: WriteTxOwnedByAggregate,
		ReadPolicy:       ReadPolicyTableRepoQueries,
		Notes:            "Deleting a document removes its relations, items and objectives in one transaction.",
	}
	WorkspaceAggregateContract = Contract{
		Name:             "Study.WorkspaceAggregate",
		WriteTxOwnership: WriteTxOwnedByAggregate,
		ReadPolicy:       ReadPolicyInvariantScoped,
		Notes:            "Owns item hierarchy, relation endpoints and node merges for one document.",
	}
	ObjectiveAggregateContract = Contract{
		Name:             "Study.ObjectiveAggregate",
		WriteTxOwnership: WriteTxOwnedByAggregate,
		ReadPolicy:       ReadPolicyInvariantScoped,
		Notes:            "Owns the objective hierarchy and cascading deletes.",
	}
)
