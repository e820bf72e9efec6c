package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodePlacementInvalid        = "PLACEMENT_INVALID"
	CodePlacementNearPlagueCore = "PLACEMENT_NEAR_PLAGUE_CORE"
	CodePlacementNearAlliedCore = "PLACEMENT_NEAR_ALLIED_CORE"
	CodeTeamNoFreeSlot          = "TEAM_NO_FREE_SLOT"
	CodeTeamNotFound            = "TEAM_NOT_FOUND"
	CodeTeamLocked              = "TEAM_LOCKED"
	CodeTeamBlacklisted         = "TEAM_BLACKLISTED"
	CodeTeamNotMember           = "TEAM_NOT_MEMBER"
	CodeTeamNotOwner            = "TEAM_NOT_OWNER"
	CodeTeamCrossTeam           = "TEAM_CROSS_TEAM"
	CodeTeamSelfTarget          = "TEAM_SELF_TARGET"
	CodeTeamPlagueMember        = "TEAM_PLAGUE_MEMBER"
	CodeVaultInsufficientItems  = "VAULT_INSUFFICIENT_ITEMS"
	CodeCommandUnknown          = "COMMAND_UNKNOWN"
	CodeCommandNotPermitted     = "COMMAND_NOT_PERMITTED"
	CodeCommandBadArgument      = "COMMAND_BAD_ARGUMENT"
	CodeSyncCooldown            = "SYNC_COOLDOWN"
	CodeNoNextMap               = "MATCH_NO_NEXT_MAP"
	CodeMapLoadFailed           = "MATCH_MAP_LOAD_FAILED"
	CodeInternal                = "INTERNAL"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Core placement errors
		CodePlacementInvalid:        "Invalid core position.",
		CodePlacementNearPlagueCore: "Core must be at least {{.Distance}} tiles away from nearest plague's core.",
		CodePlacementNearAlliedCore: "New core must be at least {{.Distance}} tiles from other core in the same team.",

		// Survivor team errors
		CodeTeamNoFreeSlot:   "No available team.",
		CodeTeamNotFound:     "Error occurred. Survivor team data is missing.",
		CodeTeamLocked:       "The closest team '{{.Team}}' is locked.",
		CodeTeamBlacklisted:  "You are blacklisted from joining the team '{{.Team}}' because you were kicked by the team owner.",
		CodeTeamNotMember:    "You are not in any team.",
		CodeTeamNotOwner:     "You are not owner in the team.",
		CodeTeamCrossTeam:    "Cannot target other team's member.",
		CodeTeamSelfTarget:   "Cannot target yourself.",
		CodeTeamPlagueMember: "You cannot do that in plague team.",

		// Vault conversion errors
		CodeVaultInsufficientItems: "Not enough resources to convert vault to core.",

		// Command errors
		CodeCommandUnknown:      "Unknown command '{{.Command}}'.",
		CodeCommandNotPermitted: "You must be admin to use '{{.Command}}'.",
		CodeCommandBadArgument:  "Invalid argument {{.Argument}}.",
		CodeSyncCooldown:        "You may only /sync every 5 seconds.",

		// Match lifecycle errors
		CodeNoNextMap:     "No next map is available. The server will stop hosting.",
		CodeMapLoadFailed: "Failed to load map '{{.Map}}'.",

		// Internal invariant violations
		CodeInternal: "Internal error occurred. Please report this.",
	},
}
