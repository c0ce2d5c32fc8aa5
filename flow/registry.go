package flow

type NodeKind string

const NODE_TRIGGER_WEBHOOK NodeKind = "trigger-webhook"
const NODE_STOP NodeKind = "stop"
const NODE_INCOMING_CALL NodeKind = "incoming-call"
const NODE_END_CALL NodeKind = "end-call"
const NODE_CALL_FORWARD NodeKind = "call-forward"
const NODE_MAKE_CALL NodeKind = "make-call"
const NODE_IVR_MENU NodeKind = "ivr-menu"
const NODE_PLAY NodeKind = "play"
const NODE_SMS NodeKind = "sms"
const NODE_WHATSAPP NodeKind = "whatsapp"
const NODE_EMAIL NodeKind = "email"
const NODE_CALLBACK NodeKind = "callback"
const NODE_DECISION NodeKind = "decision"
const NODE_WAIT NodeKind = "wait"

type Category string

const CATEGORY_TRIGGER Category = "trigger"
const CATEGORY_STOP Category = "stop"
const CATEGORY_CALL Category = "call"
const CATEGORY_COMMUNICATION Category = "communication"
const CATEGORY_FUNCTION Category = "function"

// Descriptor tells the editor how to render a node kind and what data
// payload a freshly placed node starts with.
type Descriptor struct {
	Kind        NodeKind       `json:"kind"`
	Category    Category       `json:"category"`
	Label       string         `json:"label"`
	Icon        string         `json:"icon"`
	Color       string         `json:"color"`
	DefaultData map[string]any `json:"defaultData"`
	// Handles names the output ports for kinds that branch. Edges leaving
	// such a node must carry one of these as sourceHandle.
	Handles []string `json:"handles,omitempty"`
	// Entry marks kinds a flow may start from. Every saved graph must
	// contain exactly one entry node.
	Entry bool `json:"entry,omitempty"`
}

var categoryColors = map[Category]string{
	CATEGORY_TRIGGER:       "#22c55e",
	CATEGORY_STOP:          "#ef4444",
	CATEGORY_CALL:          "#3b82f6",
	CATEGORY_COMMUNICATION: "#8b5cf6",
	CATEGORY_FUNCTION:      "#f59e0b",
}

// registry is the single node-kind catalog. Both editor palettes are
// derived from it by category so they cannot drift apart.
var registry = map[NodeKind]Descriptor{
	NODE_TRIGGER_WEBHOOK: entry(newDescriptor(NODE_TRIGGER_WEBHOOK, CATEGORY_TRIGGER, "Trigger: Webhook", "webhook")),
	NODE_STOP:            newDescriptor(NODE_STOP, CATEGORY_STOP, "Stop", "stop-circle"),
	NODE_INCOMING_CALL:   entry(newDescriptor(NODE_INCOMING_CALL, CATEGORY_CALL, "Incoming Call", "phone-incoming")),
	NODE_END_CALL:        newDescriptor(NODE_END_CALL, CATEGORY_CALL, "End Call", "phone-off"),
	NODE_CALL_FORWARD:    newDescriptor(NODE_CALL_FORWARD, CATEGORY_CALL, "Call Forward", "phone-forwarded"),
	NODE_MAKE_CALL:       newDescriptor(NODE_MAKE_CALL, CATEGORY_CALL, "Make Call", "phone-outgoing"),
	NODE_IVR_MENU:        newDescriptor(NODE_IVR_MENU, CATEGORY_CALL, "IVR Menu", "list-tree"),
	NODE_PLAY:            newDescriptor(NODE_PLAY, CATEGORY_CALL, "Play Audio", "play-circle"),
	NODE_SMS:             newDescriptor(NODE_SMS, CATEGORY_COMMUNICATION, "Send SMS", "message-square"),
	NODE_WHATSAPP:        newDescriptor(NODE_WHATSAPP, CATEGORY_COMMUNICATION, "Send WhatsApp", "message-circle"),
	NODE_EMAIL:           newDescriptor(NODE_EMAIL, CATEGORY_COMMUNICATION, "Send Email", "mail"),
	NODE_CALLBACK:        newDescriptor(NODE_CALLBACK, CATEGORY_FUNCTION, "Callback", "webhook"),
	NODE_DECISION: func() Descriptor {
		d := newDescriptor(NODE_DECISION, CATEGORY_FUNCTION, "Decision", "git-branch")
		d.Handles = []string{"yes", "no"}
		return d
	}(),
	NODE_WAIT: newDescriptor(NODE_WAIT, CATEGORY_FUNCTION, "Wait", "clock"),
}

func entry(d Descriptor) Descriptor {
	d.Entry = true
	return d
}

func newDescriptor(kind NodeKind, category Category, label string, icon string) Descriptor {
	return Descriptor{
		Kind:     kind,
		Category: category,
		Label:    label,
		Icon:     icon,
		Color:    categoryColors[category],
		DefaultData: map[string]any{
			"label":   label,
			"content": "",
		},
	}
}

// Lookup returns the descriptor for a node kind. Unknown kinds return
// ok=false; they have no fallback rendering.
func Lookup(kind NodeKind) (Descriptor, bool) {
	d, ok := registry[kind]
	return d, ok
}

// Palette returns the descriptors belonging to any of the given
// categories, in stable registry order.
func Palette(categories ...Category) []Descriptor {
	wanted := make(map[Category]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}
	var out []Descriptor
	for _, kind := range allKinds {
		d := registry[kind]
		if wanted[d.Category] {
			out = append(out, d)
		}
	}
	return out
}

// CommunicationPalette serves the general-purpose flow builder.
func CommunicationPalette() []Descriptor {
	return Palette(CATEGORY_TRIGGER, CATEGORY_COMMUNICATION, CATEGORY_FUNCTION, CATEGORY_STOP)
}

// CallPalette serves the call/IVR builder.
func CallPalette() []Descriptor {
	return Palette(CATEGORY_CALL, CATEGORY_FUNCTION, CATEGORY_STOP)
}

// allKinds fixes palette ordering; maps iterate randomly.
var allKinds = []NodeKind{
	NODE_TRIGGER_WEBHOOK,
	NODE_INCOMING_CALL,
	NODE_SMS,
	NODE_WHATSAPP,
	NODE_EMAIL,
	NODE_MAKE_CALL,
	NODE_CALL_FORWARD,
	NODE_IVR_MENU,
	NODE_PLAY,
	NODE_END_CALL,
	NODE_DECISION,
	NODE_CALLBACK,
	NODE_WAIT,
	NODE_STOP,
}
