package postgres

import (
	"context"
	"database/sql"
	"errors"
	"huddle/internal/core/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type GroupRepo struct {
	db *sql.DB
}

func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

func (r *GroupRepo) CreateGroup(ctx context.Context, g *domain.Group) error {
	if uuid.Validate(g.ID) != nil {
		return domain.ErrInvalidGroupID
	}
	exec := GetExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO groups (id, name, description, group_pic, admin_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, g.ID, g.Name, g.Description, g.GroupPic, g.AdminID, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return err
	}
	return insertMembers(ctx, exec, g.ID, g.MemberIDs)
}

func (r *GroupRepo) GetGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	return r.getGroup(ctx, groupID, "")
}

// LockGroup reads the group with FOR UPDATE. Outside a transaction the lock
// is released as soon as the statement finishes.
func (r *GroupRepo) LockGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	return r.getGroup(ctx, groupID, "FOR UPDATE")
}

func (r *GroupRepo) getGroup(ctx context.Context, groupID, lock string) (*domain.Group, error) {
	if uuid.Validate(groupID) != nil {
		return nil, domain.ErrInvalidGroupID
	}
	exec := GetExecutor(ctx, r.db)
	g := &domain.Group{}
	err := exec.QueryRowContext(ctx, `
		SELECT id, name, description, group_pic, admin_id, created_at, updated_at
		FROM groups
		WHERE id = $1
		`+lock, groupID).Scan(&g.ID, &g.Name, &g.Description, &g.GroupPic, &g.AdminID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	members, err := r.members(ctx, exec, []string{groupID})
	if err != nil {
		return nil, err
	}
	g.MemberIDs = lo.CoalesceSliceOrEmpty(members[groupID])
	return g, nil
}

func (r *GroupRepo) ListGroupsByMember(ctx context.Context, userID string) ([]domain.Group, error) {
	exec := GetExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT g.id, g.name, g.description, g.group_pic, g.admin_id, g.created_at, g.updated_at
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.GroupPic, &g.AdminID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return groups, nil
	}
	members, err := r.members(ctx, exec, lo.Map(groups, func(g domain.Group, _ int) string { return g.ID }))
	if err != nil {
		return nil, err
	}
	for i := range groups {
		groups[i].MemberIDs = lo.CoalesceSliceOrEmpty(members[groups[i].ID])
	}
	return groups, nil
}

func (r *GroupRepo) UpdateGroup(ctx context.Context, g *domain.Group) error {
	if uuid.Validate(g.ID) != nil {
		return domain.ErrInvalidGroupID
	}
	exec := GetExecutor(ctx, r.db)
	res, err := exec.ExecContext(ctx, `
		UPDATE groups
		SET name = $2, description = $3, group_pic = $4, updated_at = $5
		WHERE id = $1
	`, g.ID, g.Name, g.Description, g.GroupPic, g.UpdatedAt)
	if err != nil {
		return err
	}
	return expectRow(res, domain.ErrGroupNotFound)
}

func (r *GroupRepo) ReplaceMembers(ctx context.Context, groupID string, memberIDs []string) error {
	if uuid.Validate(groupID) != nil {
		return domain.ErrInvalidGroupID
	}
	exec := GetExecutor(ctx, r.db)
	if _, err := exec.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1`, groupID); err != nil {
		return err
	}
	if err := insertMembers(ctx, exec, groupID, memberIDs); err != nil {
		return err
	}
	_, err := exec.ExecContext(ctx, `UPDATE groups SET updated_at = now() WHERE id = $1`, groupID)
	return err
}

func (r *GroupRepo) DeleteGroup(ctx context.Context, groupID string) error {
	if uuid.Validate(groupID) != nil {
		return domain.ErrInvalidGroupID
	}
	exec := GetExecutor(ctx, r.db)
	res, err := exec.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, groupID)
	if err != nil {
		return err
	}
	return expectRow(res, domain.ErrGroupNotFound)
}

// members loads the ordered member lists of the given groups.
func (r *GroupRepo) members(ctx context.Context, exec execer, groupIDs []string) (map[string][]string, error) {
	rows, err := exec.QueryContext(ctx, `
		SELECT group_id, user_id
		FROM group_members
		WHERE group_id = ANY($1)
		ORDER BY group_id, position
	`, groupIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	type row struct{ groupID, userID string }
	var all []row
	for rows.Next() {
		var rw row
		if err := rows.Scan(&rw.groupID, &rw.userID); err != nil {
			return nil, err
		}
		all = append(all, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	grouped := lo.GroupBy(all, func(rw row) string { return rw.groupID })
	return lo.MapValues(grouped, func(rs []row, _ string) []string {
		return lo.Map(rs, func(rw row, _ int) string { return rw.userID })
	}), nil
}

func insertMembers(ctx context.Context, exec execer, groupID string, memberIDs []string) error {
	for i, userID := range lo.Uniq(memberIDs) {
		if _, err := exec.ExecContext(ctx, `
			INSERT INTO group_members (group_id, user_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (group_id, user_id) DO NOTHING
		`, groupID, userID, i); err != nil {
			return err
		}
	}
	return nil
}

func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
