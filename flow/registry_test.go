package flow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"test lookup known kind":          testLookupKnownKind,
		"test lookup unknown kind":        testLookupUnknownKind,
		"test communication palette":      testCommunicationPalette,
		"test call palette":               testCallPalette,
		"test palettes cover every kind":  testPalettesCoverEveryKind,
		"test category colors are stable": testCategoryColors,
	} {
		t.Run(scenario, fn)
	}
}

func testLookupKnownKind(t *testing.T) {
	d, ok := Lookup(NODE_DECISION)
	require.True(t, ok)
	require.Equal(t, CATEGORY_FUNCTION, d.Category)
	require.Equal(t, []string{"yes", "no"}, d.Handles)
	require.Equal(t, "Decision", d.DefaultData["label"])
}

func testLookupUnknownKind(t *testing.T) {
	_, ok := Lookup(NodeKind("teleport"))
	require.False(t, ok)
}

func testCommunicationPalette(t *testing.T) {
	kinds := map[NodeKind]bool{}
	for _, d := range CommunicationPalette() {
		kinds[d.Kind] = true
		require.NotEqual(t, CATEGORY_CALL, d.Category)
	}
	require.True(t, kinds[NODE_TRIGGER_WEBHOOK])
	require.True(t, kinds[NODE_SMS])
	require.True(t, kinds[NODE_WHATSAPP])
	require.True(t, kinds[NODE_STOP])
	require.False(t, kinds[NODE_IVR_MENU])
}

func testCallPalette(t *testing.T) {
	kinds := map[NodeKind]bool{}
	for _, d := range CallPalette() {
		kinds[d.Kind] = true
		require.NotEqual(t, CATEGORY_COMMUNICATION, d.Category)
	}
	require.True(t, kinds[NODE_INCOMING_CALL])
	require.True(t, kinds[NODE_IVR_MENU])
	require.True(t, kinds[NODE_DECISION])
	require.False(t, kinds[NODE_SMS])
}

func testPalettesCoverEveryKind(t *testing.T) {
	covered := map[NodeKind]bool{}
	for _, d := range CommunicationPalette() {
		covered[d.Kind] = true
	}
	for _, d := range CallPalette() {
		covered[d.Kind] = true
	}
	for kind := range registry {
		require.True(t, covered[kind], "kind %s is in no palette", kind)
	}
}

func testCategoryColors(t *testing.T) {
	for kind, d := range registry {
		require.Equal(t, categoryColors[d.Category], d.Color, "kind %s", kind)
	}
}
