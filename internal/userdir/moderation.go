package userdir

import "homechefs/backend/internal/models"

// Chefs lists approved chef accounts for the public chef pages.
func (d *Directory) Chefs() ([]models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	chefs := []models.User{}
	for i := range users {
		if users[i].Role == models.RoleChef && users[i].Status == models.StatusApproved {
			chefs = append(chefs, users[i])
		}
	}
	return chefs, nil
}

// PendingChefs lists chef accounts awaiting moderation.
func (d *Directory) PendingChefs() ([]models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	pending := []models.User{}
	for i := range users {
		if users[i].Role == models.RoleChef && users[i].Status == models.StatusPending {
			pending = append(pending, users[i])
		}
	}
	return pending, nil
}

// ApproveChef moves a chef to the approved state. Returns the updated
// user, or nil when the id does not belong to a chef.
func (d *Directory) ApproveChef(chefID int64) (*models.User, error) {
	return d.setChefStatus(chefID, models.StatusApproved)
}

// RejectChef moves a chef to the rejected state. Returns the updated
// user, or nil when the id does not belong to a chef.
func (d *Directory) RejectChef(chefID int64) (*models.User, error) {
	return d.setChefStatus(chefID, models.StatusRejected)
}

func (d *Directory) setChefStatus(chefID int64, status models.ChefStatus) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	idx := indexByID(users, chefID)
	if idx < 0 || users[idx].Role != models.RoleChef {
		return nil, nil
	}
	users[idx].Status = status

	if err := d.saveUsers(users); err != nil {
		return nil, err
	}
	if err := d.syncSession(users); err != nil {
		return nil, err
	}
	out := users[idx]
	return &out, nil
}
