package mysql

const insertUserSQL = `
INSERT INTO users
  (first_name, last_name, email, username, hashed_password)
VALUES
  (?, ?, ?, ?, ?)
`

const getUserSQL = `
SELECT id, first_name, last_name, email, username, hashed_password, created_at, updated_at
FROM users`

const insertSpotSQL = `
INSERT INTO spots
  (owner_id, address, city, state, country, lat, lng, name, description, price)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getSpotSQL = `
SELECT id, owner_id, address, city, state, country, lat, lng, name, description, price, created_at, updated_at
FROM spots`

const updateSpotSQL = `
UPDATE spots SET
  address     = ?,
  city        = ?,
  state       = ?,
  country     = ?,
  lat         = ?,
  lng         = ?,
  name        = ?,
  description = ?,
  price       = ?,
  updated_at  = CURRENT_TIMESTAMP
WHERE id = ?
`

const insertSpotImageSQL = `
INSERT INTO spot_images (spot_id, url, preview)
VALUES (?, ?, ?)
`

const insertReviewSQL = `
INSERT INTO reviews (spot_id, user_id, review, stars)
VALUES (?, ?, ?, ?)
`

const getReviewSQL = `
SELECT id, spot_id, user_id, review, stars, created_at, updated_at
FROM reviews`

const insertBookingSQL = `
INSERT INTO bookings (spot_id, user_id, start_date, end_date)
VALUES (?, ?, ?, ?)
`

const updateBookingSQL = `
UPDATE bookings SET
  start_date = ?,
  end_date   = ?,
  updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const getBookingSQL = `
SELECT id, spot_id, user_id, start_date, end_date, created_at, updated_at
FROM bookings`

// FOR UPDATE serializes concurrent conflict scans on the same spot; the
// aligned index is (spot_id, start_date, end_date).
const lockSpanSQL = `
SELECT id, start_date, end_date
FROM bookings
WHERE spot_id = ?
FOR UPDATE
`
