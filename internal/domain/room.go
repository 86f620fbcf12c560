package domain

type RoomName string

// DefaultRoom exists for the whole process lifetime and is the landing
// room for every new connection. Every other room lives only while it
// has members.
const DefaultRoom RoomName = "General"
