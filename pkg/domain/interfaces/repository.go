package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Profile() ProfileRepository
	Resume() ResumeRepository
	Turn() TurnRepository
	Change() ChangeRepository
	Version() VersionRepository

	Close() error
}
