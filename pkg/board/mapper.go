package board

import "time"

// ToBoardPost maps the wire format onto the view model.
func ToBoardPost(a ApiAnimal) BoardPost {
	post := BoardPost{
		ID:             a.BoardID,
		CategoryID:     a.CategoryID,
		Nickname:       a.NickName,
		UserID:         a.UserID,
		BoardViewCount: a.ViewCount,
		ThumbnailURL:   nonEmpty(a.ThumbnailURL),
		BoardTitle:     a.BoardTitle,
		BoardContent:   a.BoardContent,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		SnsURL:         nonEmpty(a.SnsURL),
		Kind:           nonEmpty(a.Kind),
		Gender:         nonEmpty(a.Gender),
		Age:            nonEmpty(a.Age),
		Color:          nonEmpty(a.Color),
		LostLocation:   nonEmpty(a.LostLocation),
		LostDate:       nonEmpty(a.LostDate),
	}

	if len(a.ImageURLs) > 0 {
		post.ImageURLs = append([]string(nil), a.ImageURLs...)
	}

	if a.LostType != nil && *a.LostType != "" {
		lt := LostType(*a.LostType)
		post.LostType = &lt
	}

	return post
}

// ToBoardPosts maps a page of wire records, skipping soft-deleted ones.
func ToBoardPosts(animals []ApiAnimal) []BoardPost {
	posts := make([]BoardPost, 0, len(animals))
	for _, a := range animals {
		if a.DeleteAt != nil {
			continue
		}
		posts = append(posts, ToBoardPost(a))
	}
	return posts
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
