package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"socialgraph/backend/internal/graph"
)

// Menu drives the interactive text loop over a graph store. It owns no rules
// of its own: it resolves usernames and post numbers, calls the store, and
// renders results or errors.
type Menu struct {
	store *graph.Store
	in    *bufio.Scanner
	out   io.Writer
	eof   bool
}

// New creates a menu reading choices from in and writing to out.
func New(store *graph.Store, in io.Reader, out io.Writer) *Menu {
	return &Menu{store: store, in: bufio.NewScanner(in), out: out}
}

// Run loops until the user exits or input ends.
func (m *Menu) Run() {
	for {
		m.printOptions()
		choice := m.prompt("Choice: ")
		if m.eof {
			return
		}
		switch choice {
		case "1":
			m.addUser()
		case "2":
			m.addPost()
		case "3":
			m.addComment()
		case "4":
			m.follow()
		case "5":
			m.unfollow()
		case "6":
			m.removeFollower()
		case "7":
			m.showConnections()
		case "8":
			m.showUserInfo()
		case "9":
			m.report()
		case "10":
			m.deleteUser()
		case "11":
			m.deletePost()
		case "12":
			fmt.Fprintln(m.out, "Thank you for using the platform!")
			return
		default:
			fmt.Fprintln(m.out, "Wrong choice, please try again.")
		}
	}
}

func (m *Menu) printOptions() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "--- Social Media Menu ---")
	fmt.Fprintln(m.out, "1. Add user")
	fmt.Fprintln(m.out, "2. Add post")
	fmt.Fprintln(m.out, "3. Add comment")
	fmt.Fprintln(m.out, "4. Follow user")
	fmt.Fprintln(m.out, "5. Unfollow user")
	fmt.Fprintln(m.out, "6. Remove follower")
	fmt.Fprintln(m.out, "7. Show followers and following")
	fmt.Fprintln(m.out, "8. Show user info")
	fmt.Fprintln(m.out, "9. Generate report")
	fmt.Fprintln(m.out, "10. Delete user (admin only)")
	fmt.Fprintln(m.out, "11. Delete post (admin only)")
	fmt.Fprintln(m.out, "12. Exit")
}

func (m *Menu) prompt(label string) string {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		m.eof = true
		return ""
	}
	return strings.TrimSpace(m.in.Text())
}

// lookup resolves a username, printing the standard miss message on failure.
func (m *Menu) lookup(label string) *graph.User {
	username := m.prompt(label)
	user := m.store.FindByUsername(username)
	if user == nil {
		fmt.Fprintln(m.out, "User not found!")
	}
	return user
}

func (m *Menu) fail(err error) {
	fmt.Fprintln(m.out, "Error:", err)
}

func (m *Menu) addUser() {
	role := graph.RoleRegular
	if m.prompt("User type (1 admin, 2 regular): ") == "1" {
		role = graph.RoleAdmin
	}
	username := m.prompt("Username: ")
	email := m.prompt("Email: ")

	if _, err := m.store.AddUser(username, email, role); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintln(m.out, "User added successfully!")
}

func (m *Menu) addPost() {
	author := m.lookup("Username: ")
	if author == nil {
		return
	}
	content := m.prompt("Post content: ")
	if _, err := m.store.AddPost(author, content); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintln(m.out, "Post added successfully!")
}

// pickPost resolves a zero-based post number on the given user.
func (m *Menu) pickPost(owner *graph.User) *graph.Post {
	raw := m.prompt("Post number: ")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 || index >= len(owner.Posts) {
		fmt.Fprintln(m.out, "Wrong post number!")
		return nil
	}
	return owner.Posts[index]
}

func (m *Menu) addComment() {
	owner := m.lookup("Username who posted: ")
	if owner == nil {
		return
	}
	post := m.pickPost(owner)
	if post == nil {
		return
	}
	commenter := m.lookup("Username who comments: ")
	if commenter == nil {
		return
	}
	content := m.prompt("Comment content: ")
	if _, err := m.store.AddComment(post, commenter, content); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintln(m.out, "Comment added successfully!")
}

func (m *Menu) follow() {
	follower := m.lookup("Your username: ")
	if follower == nil {
		return
	}
	followee := m.lookup("User to follow: ")
	if followee == nil {
		return
	}
	if err := m.store.Follow(follower, followee); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "You now follow %s\n", followee.Username)
}

func (m *Menu) unfollow() {
	follower := m.lookup("Your username: ")
	if follower == nil {
		return
	}
	followee := m.lookup("User to unfollow: ")
	if followee == nil {
		return
	}
	if err := m.store.Unfollow(follower, followee); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "You unfollowed %s\n", followee.Username)
}

func (m *Menu) removeFollower() {
	user := m.lookup("Your username: ")
	if user == nil {
		return
	}
	follower := m.lookup("Follower to remove: ")
	if follower == nil {
		return
	}
	if err := m.store.RemoveFollower(user, follower); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "%s has been removed from your followers\n", follower.Username)
}

func (m *Menu) showConnections() {
	user := m.lookup("Username: ")
	if user == nil {
		return
	}

	fmt.Fprintln(m.out, "Followers:")
	followers := m.store.Followers(user)
	if len(followers) == 0 {
		fmt.Fprintln(m.out, "No followers.")
	}
	for _, name := range followers {
		fmt.Fprintln(m.out, name)
	}

	fmt.Fprintln(m.out, "Following:")
	following := m.store.FollowingOf(user)
	if len(following) == 0 {
		fmt.Fprintln(m.out, "Not following anyone.")
	}
	for _, name := range following {
		fmt.Fprintln(m.out, name)
	}
}

func (m *Menu) showUserInfo() {
	user := m.lookup("Username: ")
	if user == nil {
		return
	}
	detail := m.store.UserInfo(user)
	fmt.Fprintln(m.out, detail.Header)
	fmt.Fprintln(m.out, "Posts:")
	for _, post := range detail.Posts {
		fmt.Fprintln(m.out, post.Line)
		for _, comment := range post.Comments {
			fmt.Fprintln(m.out, "\t"+comment)
		}
	}
}

func (m *Menu) report() {
	fmt.Fprintln(m.out, "Report:")
	for _, entry := range m.store.Report() {
		fmt.Fprintln(m.out, entry.Summary)
		for _, line := range entry.Posts {
			fmt.Fprintln(m.out, "\t"+line)
		}
		fmt.Fprintln(m.out)
	}
	fmt.Fprintln(m.out, "Report generated successfully!")
}

func (m *Menu) deleteUser() {
	actor := m.lookup("Admin username: ")
	if actor == nil {
		return
	}
	target := m.lookup("Username to delete: ")
	if target == nil {
		return
	}
	if err := m.store.DeleteUser(actor, target); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "%s has been removed from the platform\n", target.Username)
}

func (m *Menu) deletePost() {
	actor := m.lookup("Admin username: ")
	if actor == nil {
		return
	}
	owner := m.lookup("Username of the post author: ")
	if owner == nil {
		return
	}
	post := m.pickPost(owner)
	if post == nil {
		return
	}
	if err := m.store.DeletePost(actor, owner, post); err != nil {
		m.fail(err)
		return
	}
	fmt.Fprintf(m.out, "Post by %s has been removed\n", owner.Username)
}
