/* models.go
 * This file contain the structs that are shared between sub packages
 */

package shared

// User identifies the person sending a command through one of the front ends
type User struct {
	UserID   string
	Username string
}
