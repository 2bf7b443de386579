package utils

import (
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// AuthConfig holds the authorization lists from the "commands" config section.
type AuthConfig struct {
	Developers  []string `mapstructure:"developers"`
	AdminsRoles []string `mapstructure:"admins_roles"`
}

// Auth provides methods for authorization checks.
type Auth struct {
	config AuthConfig
}

// NewAuth creates a new Auth instance with the loaded configuration.
func NewAuth() (*Auth, error) {
	var cfg AuthConfig
	if err := viper.UnmarshalKey("commands.auth", &cfg); err != nil {
		return nil, err
	}
	return &Auth{config: cfg}, nil
}

// IsDeveloper checks if a user is a developer.
func (a *Auth) IsDeveloper(userID string) bool {
	for _, devID := range a.config.Developers {
		if userID == devID {
			return true
		}
	}
	return false
}

// IsAdmin checks if a user has a configured admin role.
func (a *Auth) IsAdmin(member *discordgo.Member) bool {
	for _, adminRoleID := range a.config.AdminsRoles {
		for _, userRoleID := range member.Roles {
			if userRoleID == adminRoleID {
				return true
			}
		}
	}
	return false
}

// HasManageRoles reports whether the invoking member carries the Manage Roles
// permission in the channel the interaction came from.
func HasManageRoles(member *discordgo.Member) bool {
	return member.Permissions&discordgo.PermissionManageRoles != 0 ||
		member.Permissions&discordgo.PermissionAdministrator != 0
}

// CheckPermission checks if a user has the required permission level.
// Trigger and settings management requires "manager": a developer, a
// configured admin role, or the Manage Roles permission.
func (a *Auth) CheckPermission(s *discordgo.Session, i *discordgo.InteractionCreate, requiredLevel string) bool {
	if i.Member == nil {
		return false // DM interactions have no member
	}
	user := i.Member.User
	member := i.Member

	switch requiredLevel {
	case "developer":
		return a.IsDeveloper(user.ID)
	case "manager":
		return a.IsDeveloper(user.ID) || a.IsAdmin(member) || HasManageRoles(member)
	case "guest":
		return true // Guests are allowed
	default:
		return false
	}
}
