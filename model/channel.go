package model

type ChannelType string

const CHANNEL_TYPE_SMS ChannelType = "sms"
const CHANNEL_TYPE_VOIP ChannelType = "voip"
const CHANNEL_TYPE_WHATSAPP ChannelType = "whatsapp"
const CHANNEL_TYPE_RCS ChannelType = "rcs"

// Channel is a reference row describing a communication medium, not a
// live connection.
type Channel struct {
	ID   string      `json:"id"`
	Type ChannelType `json:"type"`
	Name string      `json:"name"`
}
