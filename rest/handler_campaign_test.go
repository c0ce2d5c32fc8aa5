package rest

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omnirelay/console/model"
	"github.com/omnirelay/console/persistence/inmem"
)

func TestCampaigns(t *testing.T) {
	for scenario, fn := range map[string]func(
		t *testing.T, srv *Server, storage *inmem.Storage,
	){
		"test campaign defaults to draft":   testCampaignDefaultsToDraft,
		"test campaign with refs":           testCampaignWithRefs,
		"test campaign unknown ref":         testCampaignUnknownRef,
		"test campaign nullable refs":       testCampaignNullableRefs,
		"test contact list update":          testContactListUpdate,
		"test conversation with messages":   testConversationWithMessages,
		"test conversation unknown contact": testConversationUnknownContact,
		"test conversation assign":          testConversationAssign,
		"test channels are seeded":          testChannelsAreSeeded,
	} {
		t.Run(scenario, func(t *testing.T) {
			srv, storage := newTestServer(t)
			fn(t, srv, storage)
		})
	}
}

func testCampaignDefaultsToDraft(t *testing.T, srv *Server, storage *inmem.Storage) {
	rec := doJSON(t, srv, http.MethodPost, "/api/campaigns", map[string]string{"name": "spring promo"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var campaign model.Campaign
	decodeResponse(t, rec, &campaign)
	require.Equal(t, model.CAMPAIGN_STATUS_DRAFT, campaign.Status)
	require.Empty(t, campaign.ChannelID)
}

func testCampaignWithRefs(t *testing.T, srv *Server, storage *inmem.Storage) {
	rec := doJSON(t, srv, http.MethodPost, "/api/templates", map[string]string{
		"name": "promo", "channelId": "sms", "content": "sale on {{date}}",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var template model.Template
	decodeResponse(t, rec, &template)

	rec = doJSON(t, srv, http.MethodPost, "/api/contact-lists", map[string]string{"name": "vips"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var list model.ContactList
	decodeResponse(t, rec, &list)

	rec = doJSON(t, srv, http.MethodPost, "/api/campaigns", map[string]string{
		"name":       "spring promo",
		"channelId":  "sms",
		"templateId": template.ID,
		"listId":     list.ID,
		"status":     "scheduled",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var campaign model.Campaign
	decodeResponse(t, rec, &campaign)
	require.Equal(t, model.CAMPAIGN_STATUS_SCHEDULED, campaign.Status)
	require.Equal(t, template.ID, campaign.TemplateID)
	require.Equal(t, list.ID, campaign.ListID)
}

func testCampaignUnknownRef(t *testing.T, srv *Server, storage *inmem.Storage) {
	rec := doJSON(t, srv, http.MethodPost, "/api/campaigns", map[string]string{
		"name":       "broken",
		"templateId": "ghost",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func testCampaignNullableRefs(t *testing.T, srv *Server, storage *inmem.Storage) {
	rec := doJSON(t, srv, http.MethodPost, "/api/campaigns", map[string]string{"name": "bare"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// omitted refs stay omitted in the response body
	var body map[string]any
	decodeResponse(t, rec, &body)
	_, present := body["channelId"]
	require.False(t, present)
	_, present = body["templateId"]
	require.False(t, present)
}

func testContactListUpdate(t *testing.T, srv *Server, storage *inmem.Storage) {
	rec := doJSON(t, srv, http.MethodPost, "/api/contact-lists", map[string]string{"name": "vips"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var list model.ContactList
	decodeResponse(t, rec, &list)

	rec = doJSON(t, srv, http.MethodPut, "/api/contact-lists/"+list.ID, map[string]string{
		"name":        "vips",
		"description": "high value",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.ContactList
	decodeResponse(t, rec, &updated)
	require.Equal(t, "high value", updated.Description)
	// update responses carry the row timestamps, not zero values
	require.False(t, updated.CreatedAt.IsZero())
	require.False(t, updated.UpdatedAt.IsZero())
}

func testConversationWithMessages(t *testing.T, srv *Server, storage *inmem.Storage) {
	rec := doJSON(t, srv, http.MethodPost, "/api/contacts", map[string]string{"firstName": "Ada"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var contact model.Contact
	decodeResponse(t, rec, &contact)

	rec = doJSON(t, srv, http.MethodPost, "/api/conversations", map[string]string{
		"contactId": contact.ID,
		"channelId": "whatsapp",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var conversation model.Conversation
	decodeResponse(t, rec, &conversation)
	require.Equal(t, model.CONVERSATION_STATUS_OPEN, conversation.Status)

	rec = doJSON(t, srv, http.MethodPost, "/api/conversations/"+conversation.ID+"/messages", map[string]string{
		"body": "hello there",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var msg model.Message
	decodeResponse(t, rec, &msg)
	require.Equal(t, model.MESSAGE_DIRECTION_OUTBOUND, msg.Direction)

	rec = doJSON(t, srv, http.MethodGet, "/api/conversations/"+conversation.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Conversation model.Conversation `json:"conversation"`
		Messages     []model.Message    `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Equal(t, conversation.ID, detail.Conversation.ID)
	require.Len(t, detail.Messages, 1)
	require.Equal(t, "hello there", detail.Messages[0].Body)
}

func testConversationUnknownContact(t *testing.T, srv *Server, storage *inmem.Storage) {
	rec := doJSON(t, srv, http.MethodPost, "/api/conversations", map[string]string{
		"contactId": "ghost",
		"channelId": "sms",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func testConversationAssign(t *testing.T, srv *Server, storage *inmem.Storage) {
	rec := doJSON(t, srv, http.MethodPost, "/api/contacts", map[string]string{"firstName": "Ada"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var contact model.Contact
	decodeResponse(t, rec, &contact)

	rec = doJSON(t, srv, http.MethodPost, "/api/conversations", map[string]string{
		"contactId": contact.ID,
		"channelId": "sms",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var conversation model.Conversation
	decodeResponse(t, rec, &conversation)

	rec = doJSON(t, srv, http.MethodPut, "/api/conversations/"+conversation.ID+"/assign", map[string]string{
		"userId": "u-agent",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var assigned model.Conversation
	decodeResponse(t, rec, &assigned)
	require.Equal(t, "u-agent", assigned.AssignedTo)
}

func testChannelsAreSeeded(t *testing.T, srv *Server, storage *inmem.Storage) {
	rec := doJSON(t, srv, http.MethodGet, "/api/channels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var channels []model.Channel
	decodeResponse(t, rec, &channels)
	require.Len(t, channels, 4)
	types := map[model.ChannelType]bool{}
	for _, c := range channels {
		types[c.Type] = true
	}
	require.True(t, types[model.CHANNEL_TYPE_SMS])
	require.True(t, types[model.CHANNEL_TYPE_VOIP])
	require.True(t, types[model.CHANNEL_TYPE_WHATSAPP])
	require.True(t, types[model.CHANNEL_TYPE_RCS])
}
