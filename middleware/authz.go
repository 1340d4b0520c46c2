package middleware

import (
	models "github.com/fundspark/fundspark-go/models"
)

// CanManageCampaign is the single ownership predicate for campaign
// mutations: the creator or an admin.
func CanManageCampaign(userID, role string, campaign models.Campaign) bool {
	return role == models.RoleAdmin || campaign.Creator.Hex() == userID
}
