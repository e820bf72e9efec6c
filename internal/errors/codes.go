// Package errors provides structured error handling for the plague game mode.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Core placement errors
	CodePlacementInvalid        Code = "PLACEMENT_INVALID"
	CodePlacementNearPlagueCore Code = "PLACEMENT_NEAR_PLAGUE_CORE"
	CodePlacementNearAlliedCore Code = "PLACEMENT_NEAR_ALLIED_CORE"

	// Survivor team errors
	CodeTeamNoFreeSlot   Code = "TEAM_NO_FREE_SLOT"
	CodeTeamNotFound     Code = "TEAM_NOT_FOUND"
	CodeTeamLocked       Code = "TEAM_LOCKED"
	CodeTeamBlacklisted  Code = "TEAM_BLACKLISTED"
	CodeTeamNotMember    Code = "TEAM_NOT_MEMBER"
	CodeTeamNotOwner     Code = "TEAM_NOT_OWNER"
	CodeTeamCrossTeam    Code = "TEAM_CROSS_TEAM"
	CodeTeamSelfTarget   Code = "TEAM_SELF_TARGET"
	CodeTeamPlagueMember Code = "TEAM_PLAGUE_MEMBER"

	// Vault conversion errors
	CodeVaultInsufficientItems Code = "VAULT_INSUFFICIENT_ITEMS"

	// Command errors
	CodeCommandUnknown      Code = "COMMAND_UNKNOWN"
	CodeCommandNotPermitted Code = "COMMAND_NOT_PERMITTED"
	CodeCommandBadArgument  Code = "COMMAND_BAD_ARGUMENT"
	CodeSyncCooldown        Code = "SYNC_COOLDOWN"

	// Match lifecycle errors
	CodeNoNextMap     Code = "MATCH_NO_NEXT_MAP"
	CodeMapLoadFailed Code = "MATCH_MAP_LOAD_FAILED"

	// Internal invariant violations
	CodeInternal Code = "INTERNAL"
)

// Class groups error codes by how they propagate.
type Class int

const (
	// ClassValidation errors are surfaced to the requesting player and
	// never escape the operation that detected them.
	ClassValidation Class = iota
	// ClassInternal errors indicate a broken invariant; the operation
	// aborts with a visible internal-error message and a log entry.
	ClassInternal
	// ClassFatal errors end the hosting session.
	ClassFatal
)

// Class maps domain codes to their propagation class.
func (c Code) Class() Class {
	switch c {
	case CodePlacementInvalid,
		CodePlacementNearPlagueCore,
		CodePlacementNearAlliedCore,
		CodeTeamNoFreeSlot,
		CodeTeamLocked,
		CodeTeamBlacklisted,
		CodeTeamNotMember,
		CodeTeamNotOwner,
		CodeTeamCrossTeam,
		CodeTeamSelfTarget,
		CodeTeamPlagueMember,
		CodeVaultInsufficientItems,
		CodeCommandUnknown,
		CodeCommandNotPermitted,
		CodeCommandBadArgument,
		CodeSyncCooldown:
		return ClassValidation

	case CodeNoNextMap, CodeMapLoadFailed:
		return ClassFatal
	}
	return ClassInternal
}
